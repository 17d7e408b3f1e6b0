package services

import (
	"github.com/mroth/weightedrand/v2"
)

type ServiceChooser[T any] struct {
	chooser *weightedrand.Chooser[T, int]
}

func NewServiceChooser[T any](choices []weightedrand.Choice[T, int]) (*ServiceChooser[T], error) {
	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return nil, err
	}

	return &ServiceChooser[T]{chooser}, nil
}

func (service *ServiceChooser[T]) Pick() T {
	return service.chooser.Pick()
}
