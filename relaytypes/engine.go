package relaytypes

import (
	"reflect"

	"github.com/illuscio-dev/relayapi-go/encoding"
	"golang.org/x/xerrors"
)

// JSONExtensions returns the codec extensions that write versioned values nested in
// other content as their active generation.
func JSONExtensions() []*encoding.JSONExtensionOpts {
	return []*encoding.JSONExtensionOpts{
		encoding.UntaggedExtension(reflect.TypeOf(VersionedExecutionPayload{})),
		encoding.UntaggedExtension(reflect.TypeOf(VersionedSubmitBlockRequest{})),
	}
}

// NewContentEngine returns a content engine set up for relay API bodies.
func NewContentEngine() (*encoding.Engine, error) {
	engine, err := encoding.NewContentEngine()
	if err != nil {
		return nil, err
	}

	if err := engine.AddJSONExtensions(JSONExtensions()); err != nil {
		return nil, xerrors.Errorf("error setting up relay engine: %w", err)
	}
	return engine, nil
}
