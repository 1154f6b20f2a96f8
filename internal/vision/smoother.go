package vision

import "habitmind/internal/models"

// Smoother suppresses single-frame flicker by majority vote over a sliding
// window of the most recent classifications. The window only ever holds
// contiguous trailing frames.
type Smoother struct {
	size   int
	labels []models.Mood
}

func NewSmoother(size int) *Smoother {
	if size < 1 {
		size = 1
	}
	return &Smoother{size: size}
}

func (s *Smoother) Add(m models.Mood) {
	s.labels = append(s.labels, m)
	if len(s.labels) > s.size {
		s.labels = s.labels[1:]
	}
}

func (s *Smoother) Full() bool {
	return len(s.labels) >= s.size
}

func (s *Smoother) Len() int {
	return len(s.labels)
}

// Majority returns the most frequent label in the window. Ties go to the
// label that reached the winning count first.
func (s *Smoother) Majority() (models.Mood, bool) {
	if len(s.labels) == 0 {
		return "", false
	}

	counts := make(map[models.Mood]int, 4)
	best := s.labels[0]
	bestCount := 0
	for _, label := range s.labels {
		counts[label]++
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best, true
}

func (s *Smoother) Reset() {
	s.labels = s.labels[:0]
}
