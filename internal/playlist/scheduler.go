package playlist

import (
	"github.com/san-kum/prism/internal/mathx"
	"github.com/san-kum/prism/internal/pattern"
)

// Scheduler advances through scenes as time passes, wrapping at the end.
type Scheduler struct {
	scenes  []Scene
	index   int
	elapsed float64
}

func NewScheduler(scenes []Scene) *Scheduler {
	return &Scheduler{scenes: append([]Scene(nil), scenes...)}
}

func (s *Scheduler) Len() int { return len(s.scenes) }

// Current returns the active scene. It is the zero Scene when empty.
func (s *Scheduler) Current() Scene {
	if len(s.scenes) == 0 {
		return Scene{}
	}
	return s.scenes[s.index]
}

func (s *Scheduler) Index() int { return s.index }

// Tick adds dt seconds and reports the next scene once the current one has
// run its duration. At most one scene change happens per tick.
func (s *Scheduler) Tick(dt float64) (Scene, bool) {
	if len(s.scenes) == 0 || !(dt > 0) || !mathx.Finite(dt) {
		return Scene{}, false
	}
	s.elapsed += dt
	if s.elapsed < s.scenes[s.index].Duration {
		return Scene{}, false
	}
	return s.Step(1), true
}

// Step jumps dir scenes forward or back and restarts the scene timer.
func (s *Scheduler) Step(dir int) Scene {
	if len(s.scenes) == 0 {
		return Scene{}
	}
	n := len(s.scenes)
	s.index = ((s.index+dir)%n + n) % n
	s.elapsed = 0
	return s.scenes[s.index]
}

func (s *Scheduler) Next() Scene { return s.Step(1) }
func (s *Scheduler) Prev() Scene { return s.Step(-1) }

// Progress is the fraction of the current scene already shown.
func (s *Scheduler) Progress() float64 {
	if len(s.scenes) == 0 {
		return 0
	}
	return mathx.Clamp01(s.elapsed / s.scenes[s.index].Duration)
}

// Showcase builds count scenes striding through the pattern and theme
// lists so neighbours rarely repeat. Durations cycle 8, 11, 14, 17 seconds.
func Showcase(kinds []pattern.Kind, themes []string, count int) []Scene {
	if len(kinds) == 0 || len(themes) == 0 {
		return nil
	}
	count = max(count, 2)
	scenes := make([]Scene, 0, count)
	for i := range count {
		k := kinds[(i*3)%len(kinds)]
		th := themes[(i*5+7)%len(themes)]
		scenes = append(scenes, Scene{
			Name:     k.Name() + " / " + th,
			Params:   pattern.Defaults(k),
			Theme:    th,
			Duration: 8 + float64(i%4)*3,
		})
	}
	return scenes
}
