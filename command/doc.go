// Package command holds the signature based command framework: a Payload
// of key/value arguments, the Command contract and a Registry that routes
// a payload to the command named by its "command" key.
//
// Payloads come either from "key=value" arguments (ParsePayload) or from a
// JSON object (ParsePayloadJSON). JSON values keep their decoded types, so
// commands must check the type of every field they read.
package command
