package telemetry

import (
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"

	"trace-sample-service/internal/config"
)

// spanLevel is the least severe level attached to spans as events.
const spanLevel = log.InfoLevel

// ConfigureLogger sends entries at cfg.Level and above to out, and entries at
// info and above to the span found in the entry's context.
func ConfigureLogger(l *log.Logger, cfg config.LoggerConfig, out io.Writer) {
	outLevel, err := log.ParseLevel(cfg.Level)
	if err != nil {
		outLevel = log.WarnLevel
	}

	// logrus drops entries above the logger level before hooks run.
	l.SetLevel(maxLevel(outLevel, spanLevel))

	if cfg.Format == "json" {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	l.SetOutput(io.Discard)
	l.ReplaceHooks(make(log.LevelHooks))
	l.AddHook(&writer.Hook{Writer: out, LogLevels: levelsUpTo(outLevel)})
	l.AddHook(otellogrus.NewHook(otellogrus.WithLevels(levelsUpTo(spanLevel)...)))
}

func levelsUpTo(level log.Level) []log.Level {
	levels := make([]log.Level, 0, len(log.AllLevels))
	for _, l := range log.AllLevels {
		if l <= level {
			levels = append(levels, l)
		}
	}
	return levels
}

func maxLevel(a, b log.Level) log.Level {
	if a > b {
		return a
	}
	return b
}
