// Package confloader loads csrftok configuration with koanf.
//
// Sources, highest priority first:
//
//  1. Overrides (command-line flags), see WithOverrides and LoadMap
//  2. Environment variables with the CSRFTOK_ prefix
//  3. The YAML configuration file
//  4. Values already present in the target struct
//
// Environment keys use a double underscore between sections so that
// single underscores survive in key names:
//
//	CSRFTOK_TOKENIZER__SALT_LENGTH=12  ->  tokenizer.salt_length
//
// Watcher reports changes to a configuration file so long-running
// sessions can reload it.
package confloader
