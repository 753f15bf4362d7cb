// Soundalike - Song Similarity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundalike

/*
Package supervisor runs the server's long lived components under a suture
supervision tree.

	soundalike (root)
	├── data-layer
	│   ├── dataset-warmup   builds models at startup, polls fingerprints
	│   └── dataset-watcher  fsnotify invalidation, rate limited
	└── api-layer
	    └── http-server

Supervisor events are logged through sutureslog, which writes to the
zerolog logger via logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewWarmupService(lib, cfg.Cache.PollInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
