package platform

// Package platform contains the glue to everything outside the app: the HTTP
// client for the remote download backend, the adapter that turns its loosely
// typed payloads into the view model, and filesystem/OS helpers for saving and
// revealing finished files.
