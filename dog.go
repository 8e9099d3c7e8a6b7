package sireline

import (
	"context"

	"github.com/sireline/sireline/model"
)

// CreateDog registers a new dog in the database.
func (s *Sireline) CreateDog(ctx context.Context, dog model.Dog) (model.Dog, error) {
	return s.datasource.CreateDog(ctx, dog)
}

// GetDog retrieves a dog from the database by ID.
func (s *Sireline) GetDog(ctx context.Context, id string) (*model.Dog, error) {
	return s.datasource.GetDogByID(ctx, id)
}
