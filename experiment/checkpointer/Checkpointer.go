// Package checkpointer implements experiment Sinks that periodically
// save the parameters of an agent so that a trained agent can later be
// restored.
package checkpointer

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/samuelfneumann/gamelearn/agent"
)

// Parameterized is an object whose parameters can be checkpointed
type Parameterized interface {
	OnlineParameters() agent.Parameters
}

// Save gob-encodes params to the file filename, creating its directory
// if needed
func Save(filename string, params agent.Parameters) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return errors.Wrap(err, "save")
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "save")
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(params); err != nil {
		return errors.Wrapf(err, "save: could not encode parameters to %v",
			filename)
	}
	return errors.Wrap(f.Sync(), "save")
}

// Load decodes parameters previously written with Save
func Load(filename string) (agent.Parameters, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "load")
	}
	defer f.Close()

	var params agent.Parameters
	if err := gob.NewDecoder(f).Decode(&params); err != nil {
		return nil, errors.Wrapf(err, "load: could not decode parameters "+
			"from %v", filename)
	}
	return params, nil
}

// FilenameEnumerator returns a function which numbers the files of
// consecutive checkpoints. The first call returns filename followed by
// start+1 and extension, and each further call increments the number.
func FilenameEnumerator(start int, filename, extension string) func() string {
	n := start
	return func() string {
		n++
		return fmt.Sprintf("%v%v%v", filename, n, extension)
	}
}
