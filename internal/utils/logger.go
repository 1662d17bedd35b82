package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// servicePrefixHook tags every entry with the service name so logs from
// co-located processes stay distinguishable.
type servicePrefixHook struct {
	service string
}

func (h *servicePrefixHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *servicePrefixHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.service + "] " + entry.Message
	return nil
}

// InitLogger sets up the shared logger at info level. The configured
// level is applied later via SetLogLevel, once config has been loaded
// (config loading itself logs through this logger).
func InitLogger(service string) {
	Logger.SetOutput(os.Stdout)
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Logger.AddHook(&servicePrefixHook{service: service})
}

// SetLogLevel applies the configured level. An empty value keeps the
// default; an unparseable one is reported and ignored.
func SetLogLevel(level string) {
	if level == "" {
		return
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		Logger.Warnf("Invalid log level %q, keeping %s", level, Logger.GetLevel())
		return
	}
	Logger.SetLevel(parsed)
}
