// Package backup exports and restores the whole store as one document.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"sigs.k8s.io/yaml"

	"tableflip.dev/noter/pkg/app"
)

// Export writes the backup document to File, or to Out when File is empty.
// All includes every stored day instead of the export window around today.
type Export struct {
	Service *app.Service
	All     bool
	YAML    bool
	File    string
	Out     io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no session")
	}
	var data string
	var err error
	if n.All {
		data, err = n.Service.ExportStoredData(ctx)
	} else {
		data, err = n.Service.ExportAllData()
	}
	if err != nil {
		return err
	}

	out := []byte(data)
	if n.YAML {
		if out, err = yaml.JSONToYAML(out); err != nil {
			return fmt.Errorf("backup: render yaml: %w", err)
		}
	} else if !strings.HasSuffix(data, "\n") {
		out = append(out, '\n')
	}

	if n.File != "" {
		if err := os.WriteFile(n.File, out, 0o600); err != nil {
			return fmt.Errorf("backup: write %s: %w", n.File, err)
		}
		return nil
	}
	w := n.Out
	if w == nil {
		w = color.Output
	}
	_, err = w.Write(out)
	return err
}

// Import restores a document read from File, or from In when File is empty
// or "-". YAML and JSON are both accepted. Nothing is written when the
// document is malformed.
type Import struct {
	Service *app.Service
	File    string
	In      io.Reader
	Out     io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no session")
	}
	raw, err := n.read()
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return errors.New("backup: empty document")
	}
	data, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return fmt.Errorf("backup: parse document: %w", err)
	}
	if err := n.Service.Import(string(data)); err != nil {
		return err
	}
	w := n.Out
	if w == nil {
		w = color.Output
	}
	_, _ = fmt.Fprintln(w, "import complete")
	return nil
}

func (n *Import) read() ([]byte, error) {
	if n.File == "" || n.File == "-" {
		if n.In == nil {
			return nil, errors.New("backup: no input")
		}
		return io.ReadAll(n.In)
	}
	raw, err := os.ReadFile(n.File)
	if err != nil {
		return nil, fmt.Errorf("backup: read %s: %w", n.File, err)
	}
	return raw, nil
}
