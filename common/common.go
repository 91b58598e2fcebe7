package common

import (
	"os"

	"github.com/spread-lab/prefspread/log"
)

// CreateDir creates a directory based on the supplied parameter when it does
// not already exist
func CreateDir(dir string) error {
	_, err := os.Stat(dir)
	if !os.IsNotExist(err) {
		return err
	}
	log.Warnf(log.Global, "Directory %s does not exist.. creating.", dir)
	return os.MkdirAll(dir, os.ModePerm)
}

// DataSourceValid reports whether the config data source is supported
func DataSourceValid(source string) bool {
	return source == CSVStr || source == DatabaseStr
}
