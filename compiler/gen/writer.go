package gen

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// formatOptions only formats: jennifer already tracks the imports.
var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: true,
}

// writeFile renders, formats and writes a file. The file is replaced
// atomically, so readers never observe a partially written file.
func (g *JenniferGenerator) writeFile(f *jen.File, path string) error {
	// 1. Render; jennifer reports unparsable output together with the source
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		debugPath := writeDebug(path, []byte(err.Error()))
		return NewGenerationError("render", path, "render output written to "+debugPath, err)
	}

	// 2. Format
	start := time.Now()
	formatted, err := imports.Process(path, buf.Bytes(), formatOptions)
	g.observe(func(m *WriterMetrics) { m.FormatTime += int64(time.Since(start)) })
	if err != nil {
		debugPath := writeDebug(path, buf.Bytes())
		return NewGenerationError("format", path, "unformatted output written to "+debugPath, err)
	}

	// 3. Write
	start = time.Now()
	if err := writeAtomic(path, formatted); err != nil {
		return NewGenerationError("write", path, "", err)
	}
	// A debug file of an earlier failed run is stale now.
	_ = os.Remove(path + ".error")
	g.observe(func(m *WriterMetrics) {
		m.WriteTime += int64(time.Since(start))
		m.FilesGenerated++
		m.TotalBytes += int64(len(formatted))
	})
	return nil
}

// writeDebug writes the output of a failed run next to path for debugging
// (errors intentionally ignored as we're already in error state).
func writeDebug(path string, data []byte) string {
	debugPath := path + ".error"
	_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
	_ = os.WriteFile(debugPath, data, 0o644)
	return debugPath
}

// writeAtomic writes data to a temporary file in the destination directory
// and renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
