// loader.go fans the manifest's asset decodes out across a worker pool and
// joins them before the first frame. Textures, models, and sounds decode
// concurrently; any failure aborts the load with the originating path.
package asset

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/wgslbox/engine/audio"
	"github.com/Carmen-Shannon/wgslbox/engine/shader"
	"github.com/Carmen-Shannon/wgslbox/engine/source"
)

// Bundle holds every decoded required asset of a loaded game, in manifest
// order.
type Bundle struct {
	Textures []*Texture
	Models   []*Model
	Sounds   []*audio.Clip
}

// loadWorkers bounds the decode pool; queue size accommodates every asset
// of a typical game with headroom.
const (
	loadWorkers   = 4
	loadQueueSize = 64
)

// Load decodes all required assets named by the manifest.
//
// Parameters:
//   - man: the program manifest
//   - src: the game's file resolver
//
// Returns:
//   - *Bundle: the decoded assets in manifest order
//   - error: the first decode or read failure, wrapping the asset path
func Load(man *shader.Manifest, src source.Source) (*Bundle, error) {
	bundle := &Bundle{
		Textures: make([]*Texture, len(man.Textures)),
		Models:   make([]*Model, len(man.Models)),
		Sounds:   make([]*audio.Clip, len(man.Sounds)),
	}

	pool := worker.NewDynamicWorkerPool(loadWorkers, loadQueueSize, 1*time.Second)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}
	submit := func(id int, do func() error) {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				if err := do(); err != nil {
					fail(err)
				}
				return nil, nil
			},
		})
	}

	taskID := 0
	for i, name := range man.Textures {
		i, name := i, name
		submit(taskID, func() error {
			data, err := src.ReadBytes(name)
			if err != nil {
				return err
			}
			tex, err := DecodeTexture(name, data)
			if err != nil {
				return err
			}
			bundle.Textures[i] = tex
			return nil
		})
		taskID++
	}
	for i, name := range man.Models {
		i, name := i, name
		submit(taskID, func() error {
			text, err := src.ReadText(name)
			if err != nil {
				return err
			}
			model, err := LoadOBJ(name, text)
			if err != nil {
				return err
			}
			bundle.Models[i] = model
			return nil
		})
		taskID++
	}
	for i, name := range man.Sounds {
		i, name := i, name
		submit(taskID, func() error {
			data, err := src.ReadBytes(name)
			if err != nil {
				return err
			}
			clip, err := audio.DecodeClip(name, data)
			if err != nil {
				return err
			}
			bundle.Sounds[i] = clip
			return nil
		})
		taskID++
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return bundle, nil
}
