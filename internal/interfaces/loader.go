// internal/interfaces/loader.go
package interfaces

import "go-raycaster/internal/world"

// Loader builds the world for the level file at path.
type Loader func(path string) (World, error)

// WorldLoader adapts world.Load to a Loader.
func WorldLoader(opts world.Options) Loader {
	return func(path string) (World, error) {
		w, err := world.Load(path, opts)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}
