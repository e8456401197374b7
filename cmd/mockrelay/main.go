// Command mockrelay serves an in-memory relay for builder development.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("mock relay stopped")
	}
}
