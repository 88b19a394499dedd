package configuration

import (
	"fmt"
	"path/filepath"

	"github.com/YuamLu/LessWrong-scraper/store"
	"github.com/YuamLu/LessWrong-scraper/utils"
	"github.com/spf13/viper"
)

// ArchivePath returns the output file location from the bound flags.
func ArchivePath() string {
	return filepath.Join(viper.GetString("output-dir"), viper.GetString("output-file"))
}

// ProgressPath returns the progress sidecar location from the bound flags.
func ProgressPath() string {
	return filepath.Join(viper.GetString("output-dir"), viper.GetString("progress-file"))
}

// OpenExistingArchive opens the archive for the inspection commands, which
// have nothing to show until a scrape has created one.
func OpenExistingArchive() (st *store.ArchiveStore, err error) {
	path := ArchivePath()

	var exists bool
	if exists, err = utils.PathExists(path); err == nil {
		if exists {
			st, err = store.OpenArchiveStore(path, ProgressPath())
		} else {
			err = fmt.Errorf("Archive %q does not exist", path)
		}
	}
	return
}
