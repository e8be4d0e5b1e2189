package generator

// Kind describes one generator command.
type Kind struct {
	// Signature is the callable command name.
	Signature string `yaml:"signature" json:"signature" validate:"required"`

	// Description is shown in command listings.
	Description string `yaml:"description" json:"description,omitempty"`

	// Usage is an example invocation. Derived from the
	// signature and suffix when empty.
	Usage string `yaml:"usage" json:"usage,omitempty"`

	// Label names the artifact type in messages.
	Label string `yaml:"label" json:"label" validate:"required"`

	// Stub is the stub file name, relative to the stubs
	// directory.
	Stub string `yaml:"stub" json:"stub" validate:"required"`

	// Category is the output directory, relative to the
	// project directory.
	Category string `yaml:"category" json:"category" validate:"required"`

	// Token is the placeholder replaced by the derived
	// identifier.
	Token string `yaml:"token" json:"token" validate:"required"`

	// Suffix is the extension artifact names must end
	// with.
	Suffix string `yaml:"suffix" json:"suffix" validate:"required,startswith=.,excludesall=0x2C0x7C"`

	// Integrated marks kinds shipped with the tool.
	Integrated bool `yaml:"-" json:"integrated"`
}

// Builtin returns the generator kinds shipped with the
// tool.
func Builtin() []Kind {
	return []Kind{
		{
			Signature:   "make:middleware",
			Description: "Create new middleware",
			Usage:       "command=make:middleware name=ExampleMiddleware.js",
			Label:       "Middleware",
			Stub:        "Middleware.stub",
			Category:    "middleware",
			Token:       "MIDDLEWARE_NAME",
			Suffix:      ".js",
			Integrated:  true,
		},
		{
			Signature:   "make:command",
			Description: "Create new command",
			Usage:       "command=make:command name=ExampleCommand.js",
			Label:       "Command",
			Stub:        "Command.stub",
			Category:    "commands",
			Token:       "COMMAND_NAME",
			Suffix:      ".js",
			Integrated:  true,
		},
		{
			Signature:   "make:event",
			Description: "Create new event",
			Usage:       "command=make:event name=ExampleEvent.js",
			Label:       "Event",
			Stub:        "Event.stub",
			Category:    "events",
			Token:       "EVENT_NAME",
			Suffix:      ".js",
			Integrated:  true,
		},
		{
			Signature:   "make:listener",
			Description: "Create new listener",
			Usage:       "command=make:listener name=ExampleListener.js",
			Label:       "Listener",
			Stub:        "Listener.stub",
			Category:    "listeners",
			Token:       "LISTENER_NAME",
			Suffix:      ".js",
			Integrated:  true,
		},
	}
}

// usage returns the configured usage or a default one.
func (ki Kind) usage() string {
	if ki.Usage != "" {
		return ki.Usage
	}

	return "command=" + ki.Signature + " name=Example" + ki.Suffix
}
