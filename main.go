package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"bytemomo/barracuda/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
