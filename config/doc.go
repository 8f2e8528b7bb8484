// Package config loads bpekit CLI settings.
//
// Sources are layered, later ones winning:
//
//  1. Default()
//  2. BPEKIT_* environment variables (LoadFromEnv)
//  3. a YAML, TOML or JSON file (LoadFile)
//  4. command-line flags
//
// Example YAML:
//
//	corpus:
//	  - data/en.txt
//	  - data/ru.txt
//	vocab_size: 4096
//	model_path: models/bpe.json
//	normalize: nfc
//	log_level: debug
//
// The same file in TOML:
//
//	corpus = ["data/en.txt", "data/ru.txt"]
//	vocab_size = 4096
//	model_path = "models/bpe.json"
package config
