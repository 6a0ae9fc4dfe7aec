package scoresvc

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "scoresvc")
