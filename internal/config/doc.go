// Package config defines the csrftok configuration structure, its
// defaults and validation.
//
// The configuration is loaded by confloader from a YAML file,
// CSRFTOK_ environment variables and command-line flags:
//
//	tokenizer:
//	  algorithm: sha256
//	  salt_length: 8
//	  secret_length: 18
//	  validity: 1h
//	  user_binding: true
//	  hmac_key: ""
//	log:
//	  level: info
//	  format: json
package config
