// Package config provides configuration management for the 2048 game server.
//
// The config package handles:
//   - Loading server settings from a YAML file
//   - Built-in defaults for every setting
//   - Validation of ports, timeouts, and directories
//
// Configuration Format:
//
//	server:
//	  host: localhost
//	  port: 8080
//	  static_dir: static
//	  read_timeout: 15s
//	  write_timeout: 15s
//	  idle_timeout: 60s
//	game:
//	  seed: 0            # 0 = nondeterministic tile placement
//	sessions:
//	  ttl: 24h
//	  cleanup_interval: 1h
//
// Search Order:
//
// Load tries the explicit path first, then ./configs/game2048.yaml, and
// finally falls back to Default(). Values missing from a file keep their
// defaults.
//
// Usage:
//
//	cfg, err := config.Load(path)
//	if err != nil {
//		log.Fatal(err)
//	}
//	addr := cfg.Server.Addr()
package config
