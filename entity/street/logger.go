package street

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "street")
