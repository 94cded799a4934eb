package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentOverrides(t *testing.T) {
	p := &Paths{
		configFileName: "config.yml",
		dbFileName:     "readtime.db",
		sqliteFileName: "readtime.sqlite",
		logFileName:    "readtime.log",
	}

	p.applyEnvironmentOverrides(" dev ")

	assert.Equal(t, "config_dev.yml", p.configFileName)
	assert.Equal(t, "readtime_dev.db", p.dbFileName)
	assert.Equal(t, "readtime_dev.sqlite", p.sqliteFileName)
	assert.Equal(t, "readtime_dev.log", p.logFileName)
}

func TestNoEnvironmentKeepsDefaults(t *testing.T) {
	p := &Paths{configFileName: "config.yml"}

	p.applyEnvironmentOverrides("")

	assert.Equal(t, "config.yml", p.configFileName)
}

func TestStripExtension(t *testing.T) {
	assert.Equal(t, "book", StripExtension("book.pdf"))
	assert.Equal(t, "archive.tar", StripExtension("archive.tar.gz"))
	assert.Equal(t, "noext", StripExtension("noext"))
}
