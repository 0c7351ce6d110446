package assets

import "github.com/spaghettifunk/vkquad/engine/renderer/metadata"

type Loader interface {
	Load(path string, params interface{}) (*metadata.Resource, error) // `interface{}` lets each loader take its own parameters
	Unload(*metadata.Resource) error
}
