// Package app contains the core application logic of bfc. It turns the
// command-line configuration into a build configuration, then drives the
// read, translate, write and native-compile pipeline for every source,
// decoupled from any specific entrypoint.
package app
