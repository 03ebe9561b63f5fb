package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/scewiki/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
// Supported flags:
//
//	-s string   storage: sql or document
//	-D string   database driver: sqlite or pgx
//	-d string   database DSN
//	-k string   key/value backend for document storage: sql, s3 or memory
//	-l string   log level
//
// args is filtered through flagx.FilterArgs so flags owned by other parts
// of the command line do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-s", "-D", "-d", "-k", "-l"})

	fs := flag.NewFlagSet("scewiki", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (sql|document)")
	fs.StringVar(&cfg.Driver, "D", cfg.Driver, "database driver (sqlite|pgx)")
	fs.StringVar(&cfg.DSN, "d", cfg.DSN, "database DSN")
	fs.StringVar(&cfg.KVBackend, "k", cfg.KVBackend, "document kv backend (sql|s3|memory)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
