// Package config loads uboterm's configuration.
//
// Settings are layered, each layer overriding the fields it sets:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. User file: ~/.config/uboterm/config.yaml
//  3. Project file: ./.uboterm/config.yaml
//  4. A file named with --config
//  5. Environment: GRPC_HOST, GRPC_PORT, TERM_PROGRAM, UBOTERM_LOG_LEVEL,
//     UBOTERM_PROTOCOL
//
// Command line flags are applied by the caller after LoadConfig.
//
// # Example
//
//	server:
//	  host: 192.168.1.40
//	  port: 50051
//	  compression: gzip
//	display:
//	  protocol: auto
//	  dumpFile: /tmp/display.raw
//	  dumpCompression: zstd
//	keyboard:
//	  quit: q
//	  bindings:
//	    - sequence: "x"
//	      key: HOME
//	session:
//	  title: Hello
//	  content: Connected from the workshop laptop.
//	logging:
//	  level: debug
//	  file: /tmp/uboterm.log
//
// Key bindings are merged into the built-in table by sequence. A file
// cannot bind the quit sequence.
package config
