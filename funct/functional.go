package funct

func Map[T any, R any](slide []T, transformer func(x T) (R, error)) ([]R, error) {
	newSlide := make([]R, 0, len(slide))

	for _, v := range slide {
		newValue, err := transformer(v)
		if err != nil {
			return nil, err
		}

		newSlide = append(
			newSlide,
			newValue,
		)
	}
	return newSlide, nil
}

func Filter[T any](slide []T, cond func(x T) bool) []T {
	newSlide := make([]T, 0, len(slide))

	for _, v := range slide {
		if cond(v) {
			newSlide = append(newSlide, v)
		}
	}
	return newSlide
}

func Some[T any](slide []T, cond func(x T) bool) bool {
	for _, v := range slide {
		if cond(v) {
			return true
		}
	}
	return false
}
