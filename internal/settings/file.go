package settings

import (
	"bytes"
	"errors"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/simplesurance/ccnetcfg/internal/fs"
)

const filePerm = 0o640

type writeSettings struct {
	overwrite bool
	commented bool
}

// ToFileOpt is an option for Settings.ToFile.
type ToFileOpt func(*writeSettings)

// ToFileOptOverwrite replaces an existing file instead of returning an error.
func ToFileOptOverwrite() ToFileOpt {
	return func(o *writeSettings) {
		o.overwrite = true
	}
}

// ToFileOptCommented writes every setting as comment. A commented file
// results in the default settings when it is loaded.
func ToFileOptCommented() ToFileOpt {
	return func(o *writeSettings) {
		o.commented = true
	}
}

// ToFile writes the settings in TOML format to path.
func (s *Settings) ToFile(path string, opts ...ToFileOpt) error {
	var ws writeSettings
	for _, opt := range opts {
		opt(&ws)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	if ws.commented {
		data = commentLines(data)
	}

	if ws.overwrite {
		return fs.WriteFileAtomic(path, data, filePerm)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}

	_, err = f.Write(data)

	return errors.Join(err, f.Close())
}

// commentLines prefixes every line that is not already a comment with "# ".
func commentLines(data []byte) []byte {
	var buf bytes.Buffer

	for line := range bytes.Lines(data) {
		if !bytes.HasPrefix(line, []byte("#")) {
			buf.WriteString("# ")
		}

		buf.Write(line)
	}

	return buf.Bytes()
}
