package commands

import (
	"livebridge/live"
	"livebridge/router"
)

func registerScene(reg registerFunc, song *live.Song) {
	reg("get_all_scenes", func(p router.Params) (any, error) {
		scenes := song.Scenes()
		out := make([]map[string]any, len(scenes))
		for i, sc := range scenes {
			out[i] = map[string]any{
				"index":        sc.Index,
				"name":         sc.Name,
				"color":        sc.Color,
				"is_triggered": sc.IsTriggered,
			}
		}
		return map[string]any{"scene_count": len(scenes), "scenes": out}, nil
	})

	reg("get_scene_color", func(p router.Params) (any, error) {
		index, err := p.Int("scene_index", 0)
		if err != nil {
			return nil, err
		}
		sc, err := song.Scene(index)
		if err != nil {
			return nil, err
		}
		return map[string]any{"scene_index": index, "color": sc.Color}, nil
	})

	reg("create_scene", func(p router.Params) (any, error) {
		index, err := p.Int("index", -1)
		if err != nil {
			return nil, err
		}
		newIndex, err := song.CreateScene(index)
		if err != nil {
			return nil, err
		}
		return map[string]any{"created": true, "scene_index": newIndex}, nil
	})

	reg("delete_scene", func(p router.Params) (any, error) {
		index, err := p.Int("scene_index", 0)
		if err != nil {
			return nil, err
		}
		if err := song.DeleteScene(index); err != nil {
			return nil, err
		}
		return map[string]any{"deleted": true, "scene_index": index}, nil
	})

	reg("fire_scene", func(p router.Params) (any, error) {
		index, err := p.Int("scene_index", 0)
		if err != nil {
			return nil, err
		}
		if err := song.FireScene(index); err != nil {
			return nil, err
		}
		return map[string]any{"fired": true, "scene_index": index}, nil
	})

	reg("stop_scene", func(p router.Params) (any, error) {
		index, err := p.Int("scene_index", 0)
		if err != nil {
			return nil, err
		}
		if err := song.StopScene(index); err != nil {
			return nil, err
		}
		return map[string]any{"stopped": true, "scene_index": index}, nil
	})

	reg("set_scene_name", func(p router.Params) (any, error) {
		index, err := p.Int("scene_index", 0)
		if err != nil {
			return nil, err
		}
		name, err := p.String("name", "")
		if err != nil {
			return nil, err
		}
		if err := song.SetSceneName(index, name); err != nil {
			return nil, err
		}
		return map[string]any{"scene_index": index, "name": name}, nil
	})

	reg("set_scene_color", func(p router.Params) (any, error) {
		index, err := p.Int("scene_index", 0)
		if err != nil {
			return nil, err
		}
		color, err := p.Int("color", 0)
		if err != nil {
			return nil, err
		}
		if err := song.SetSceneColor(index, color); err != nil {
			return nil, err
		}
		return map[string]any{"scene_index": index, "color": color}, nil
	})

	reg("select_scene", func(p router.Params) (any, error) {
		index, err := p.Int("scene_index", 0)
		if err != nil {
			return nil, err
		}
		if err := song.SelectScene(index); err != nil {
			return nil, err
		}
		return map[string]any{"selected": true, "scene_index": index}, nil
	})
}
