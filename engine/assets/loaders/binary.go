package loaders

import (
	"fmt"
	"io"
	"os"

	"github.com/spaghettifunk/vkquad/engine/renderer/metadata"
)

type BinaryLoader struct{}

func (bl *BinaryLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	name, _ := params.(string)
	return &metadata.Resource{
		Name:     name,
		FullPath: path,
		DataSize: uint64(len(buf)),
		Data:     buf,
	}, nil
}

func (bl *BinaryLoader) Unload(r *metadata.Resource) error {
	if r == nil {
		return fmt.Errorf("cannot unload a nil resource")
	}
	r.Data = nil
	r.DataSize = 0
	return nil
}
