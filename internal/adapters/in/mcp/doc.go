// Package mcp exposes the command interpreter as MCP tools over streamable HTTP.
//
// Every tool except validate takes a caller argument holding the contact of the chat
// user the agent acts for; the remaining arguments become the command payload. Tool
// results are the interpreter's reply text, so rejected commands are ordinary results
// rather than protocol errors.
//
// The bearer token authenticates the agent, not the chat user. Any token holder can
// name any caller, including the vendor, so the upstream agent must pass the sender
// identity its chat gateway has verified and never a contact taken from message text.
package mcp
