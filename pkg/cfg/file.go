package cfg

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"

	"github.com/simplesurance/ccnetcfg/internal/fs"
	"github.com/simplesurance/ccnetcfg/pkg/schema"
)

// DefaultIndent is the number of spaces that nested elements are indented
// with when a document is written.
const DefaultIndent = 2

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var versionCommentRe = regexp.MustCompile(`configurationVersion\s*[=:]\s*"?(\d+(?:\.\d+){0,2})"?`)

type loadOpts struct {
	strict         bool
	logf           LogFn
	defaultVersion schema.Version
	registry       *schema.Registry
}

// LoadOpt is an option for Parse and FromFile.
type LoadOpt func(*loadOpts)

// LoadOptStrict makes parsing fail on unknown attributes and elements and
// on items that require a newer configuration version.
func LoadOptStrict() LoadOpt {
	return func(o *loadOpts) {
		o.strict = true
	}
}

// LoadOptLogf sets the function that debug messages are logged with.
func LoadOptLogf(fn LogFn) LoadOpt {
	return func(o *loadOpts) {
		o.logf = fn
	}
}

// LoadOptDefaultVersion sets the configuration version that is used for
// documents without a version comment. The default is LatestVersion.
func LoadOptDefaultVersion(v schema.Version) LoadOpt {
	return func(o *loadOpts) {
		o.defaultVersion = v
	}
}

// LoadOptRegistry sets the registry that component types are resolved in.
// The default is Types.
func LoadOptRegistry(r *schema.Registry) LoadOpt {
	return func(o *loadOpts) {
		o.registry = r
	}
}

func newLoadOpts(opts []LoadOpt) *loadOpts {
	o := loadOpts{
		logf:           func(string, ...any) {},
		defaultVersion: LatestVersion,
		registry:       Types,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return &o
}

// Parse reads a ccnet.config document from r.
// The encoding declared in the XML declaration is respected, a leading
// UTF-8 byte order mark is skipped.
func Parse(r io.Reader, opts ...LoadOpt) (*CruiseControl, error) {
	o := newLoadOpts(opts)

	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel

	if _, err := doc.ReadFrom(br); err != nil {
		return nil, fmt.Errorf("parsing xml failed: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no %q root element", RootElement)
	}

	version, found, err := documentVersion(doc)
	if err != nil {
		return nil, err
	}

	if !found {
		version = o.defaultVersion
		o.logf("document has no configurationVersion comment, using version %s\n", version)
	} else {
		o.logf("document has configuration version %s\n", version)
	}

	return Deserialize(version, root, opts...)
}

// FromFile reads a ccnet.config document from a file.
func FromFile(path string, opts ...LoadOpt) (*CruiseControl, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// documentVersion returns the version from the first configurationVersion
// comment that precedes the root element or is one of its leading children.
func documentVersion(doc *etree.Document) (schema.Version, bool, error) {
	var comments []*etree.Comment

	for _, tok := range doc.Child {
		if c, ok := tok.(*etree.Comment); ok {
			comments = append(comments, c)
		}
	}

	for _, tok := range doc.Root().Child {
		if _, ok := tok.(*etree.Element); ok {
			break
		}

		if c, ok := tok.(*etree.Comment); ok {
			comments = append(comments, c)
		}
	}

	for _, c := range comments {
		m := versionCommentRe.FindStringSubmatch(c.Data)
		if m == nil {
			continue
		}

		v, err := schema.ParseVersion(m[1])
		if err != nil {
			return schema.Version{}, false, fmt.Errorf("invalid configurationVersion comment: %w", err)
		}

		return v, true, nil
	}

	return schema.Version{}, false, nil
}

func versionComment(v schema.Version) string {
	return fmt.Sprintf(" configurationVersion=%s ", v)
}

type writeOpts struct {
	indent          int
	overwrite       bool
	backup          bool
	omitLegacyTypes bool
}

// WriteOpt is an option for Write and ToFile.
type WriteOpt func(*writeOpts)

// WriteOptIndent sets the number of spaces nested elements are indented
// with. 0 writes one element per line without indentation.
func WriteOptIndent(spaces int) WriteOpt {
	return func(o *writeOpts) {
		o.indent = spaces
	}
}

// WriteOptOmitLegacyTypes drops the ccnetconfigType attributes that were
// read from the source document. By default they are written back
// unchanged.
func WriteOptOmitLegacyTypes() WriteOpt {
	return func(o *writeOpts) {
		o.omitLegacyTypes = true
	}
}

// ToFileOptOverwrite replaces an existing file instead of returning an
// error. The file is replaced atomically.
func ToFileOptOverwrite() WriteOpt {
	return func(o *writeOpts) {
		o.overwrite = true
	}
}

// ToFileOptBackup copies an existing file to a file with the suffix
// fs.FileBackupSuffix before it is overwritten. It implies
// ToFileOptOverwrite.
func ToFileOptBackup() WriteOpt {
	return func(o *writeOpts) {
		o.overwrite = true
		o.backup = true
	}
}

func newWriteOpts(opts []WriteOpt) *writeOpts {
	o := writeOpts{indent: DefaultIndent}

	for _, opt := range opts {
		opt(&o)
	}

	return &o
}

func (c *CruiseControl) document(o *writeOpts) (*etree.Document, error) {
	enc := c.encoder()
	enc.OmitLegacyTypes = o.omitLegacyTypes

	root, err := c.serialize(enc)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.CreateComment(versionComment(c.Version))
	doc.SetRoot(root)
	doc.Indent(o.indent)

	return doc, nil
}

// Write writes the document in UTF-8 encoding to w.
// The configuration version is stored in a comment before the root element.
func (c *CruiseControl) Write(w io.Writer, opts ...WriteOpt) error {
	doc, err := c.document(newWriteOpts(opts))
	if err != nil {
		return err
	}

	_, err = doc.WriteTo(w)
	return err
}

// String returns the XML representation of the document.
func (c *CruiseControl) String() string {
	var sb strings.Builder

	if err := c.Write(&sb); err != nil {
		return fmt.Sprintf("<!-- %s -->", err)
	}

	return sb.String()
}

// ToFile writes the document to path.
// If the file exists, an error that can be tested with os.IsExist is
// returned, unless ToFileOptOverwrite is passed.
func (c *CruiseControl) ToFile(path string, opts ...WriteOpt) error {
	o := newWriteOpts(opts)

	doc, err := c.document(o)
	if err != nil {
		return err
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}

	if !o.overwrite {
		return writeNewFile(path, data)
	}

	if o.backup {
		if err := fs.BackupFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("creating backup of %s failed: %w", path, err)
		}
	}

	perm := os.FileMode(0o640)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	return fs.WriteFileAtomic(path, data, perm)
}

func writeNewFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file failed: %w", err)
	}

	return nil
}
