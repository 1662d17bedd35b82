package utils

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	prev := Logger.GetLevel()
	defer Logger.SetLevel(prev)

	t.Run("valid level is applied", func(t *testing.T) {
		Logger.SetLevel(logrus.InfoLevel)
		SetLogLevel("debug")
		require.Equal(t, logrus.DebugLevel, Logger.GetLevel())
	})

	t.Run("empty keeps the current level", func(t *testing.T) {
		Logger.SetLevel(logrus.WarnLevel)
		SetLogLevel("")
		require.Equal(t, logrus.WarnLevel, Logger.GetLevel())
	})

	t.Run("garbage keeps the current level", func(t *testing.T) {
		Logger.SetLevel(logrus.InfoLevel)
		SetLogLevel("loud")
		require.Equal(t, logrus.InfoLevel, Logger.GetLevel())
	})
}
