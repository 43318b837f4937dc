package logging_test

import (
	"github.com/grovetools/hookcheck/logging"
	"github.com/sirupsen/logrus"
)

func ExampleNewLogger() {
	log := logging.NewLogger("my-component")

	log.Debug("Debug information")
	log.Info("Validating document")

	log.WithFields(logrus.Fields{
		"path":    ".pre-commit-config.yaml",
		"sources": 7,
	}).Info("Document parsed")

	log.WithField("rule", "mutable-rev").Warn("Revision pin is a branch")
}
