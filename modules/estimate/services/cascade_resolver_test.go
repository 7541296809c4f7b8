package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stroyhub/backoffice/modules/estimate/domain/costing"
	"github.com/stroyhub/backoffice/modules/estimate/services"
	"github.com/stroyhub/backoffice/pkg/querycache"
)

type fakeOptionsSource struct {
	costCategories []costing.Option
	detailByParent map[uuid.UUID][]costing.Option
	workSets       map[uuid.UUID][]costing.Option
	rates          map[uuid.UUID][]costing.Option

	detailCalls  int
	workSetCalls int
	rateCalls    int
}

func (f *fakeOptionsSource) CostCategories(context.Context) ([]costing.Option, error) {
	return f.costCategories, nil
}

func (f *fakeOptionsSource) DetailCostCategories(_ context.Context, parent uuid.UUID) ([]costing.Option, error) {
	f.detailCalls++
	return f.detailByParent[parent], nil
}

func (f *fakeOptionsSource) WorkSets(_ context.Context, parent uuid.UUID) ([]costing.Option, error) {
	f.workSetCalls++
	return f.workSets[parent], nil
}

func (f *fakeOptionsSource) Rates(_ context.Context, parent uuid.UUID) ([]costing.Option, error) {
	f.rateCalls++
	return f.rates[parent], nil
}

func TestCascadeResolver(t *testing.T) {
	ctx := context.Background()

	categoryA := uuid.New()
	categoryB := uuid.New()
	detailA := costing.Option{ID: uuid.New(), Name: "Plaster"}
	detailB := costing.Option{ID: uuid.New(), Name: "Flooring"}

	newResolver := func() (*services.CascadeResolver, *fakeOptionsSource) {
		source := &fakeOptionsSource{
			costCategories: []costing.Option{{ID: categoryA, Name: "A"}, {ID: categoryB, Name: "B"}},
			detailByParent: map[uuid.UUID][]costing.Option{
				categoryA: {detailA},
				categoryB: {detailB},
			},
			workSets: map[uuid.UUID][]costing.Option{},
			rates:    map[uuid.UUID][]costing.Option{},
		}
		return services.NewCascadeResolver(source, querycache.New()), source
	}

	t.Run("dependent level disabled while parent unset", func(t *testing.T) {
		resolver, source := newResolver()

		opts, enabled, err := resolver.Options(ctx, services.LevelDetailCostCategory)
		require.NoError(t, err)
		require.False(t, enabled)
		require.Nil(t, opts)
		require.Zero(t, source.detailCalls, "disabled level must not query")
	})

	t.Run("top level always enabled", func(t *testing.T) {
		resolver, _ := newResolver()

		opts, enabled, err := resolver.Options(ctx, services.LevelCostCategory)
		require.NoError(t, err)
		require.True(t, enabled)
		require.Len(t, opts, 2)
	})

	t.Run("options follow the selected parent", func(t *testing.T) {
		resolver, _ := newResolver()

		resolver.Select(services.LevelCostCategory, categoryA)
		opts, enabled, err := resolver.Options(ctx, services.LevelDetailCostCategory)
		require.NoError(t, err)
		require.True(t, enabled)
		require.Equal(t, []costing.Option{detailA}, opts)

		resolver.Select(services.LevelCostCategory, categoryB)
		opts, _, err = resolver.Options(ctx, services.LevelDetailCostCategory)
		require.NoError(t, err)
		require.Equal(t, []costing.Option{detailB}, opts)
	})

	t.Run("selecting a level clears every deeper selection", func(t *testing.T) {
		resolver, _ := newResolver()

		resolver.Select(services.LevelCostCategory, categoryA)
		resolver.Select(services.LevelDetailCostCategory, detailA.ID)
		resolver.Select(services.LevelWorkSet, uuid.New())
		resolver.Select(services.LevelRate, uuid.New())

		resolver.Select(services.LevelCostCategory, categoryB)

		_, ok := resolver.Selection(services.LevelDetailCostCategory)
		require.False(t, ok)
		_, ok = resolver.Selection(services.LevelWorkSet)
		require.False(t, ok)
		_, ok = resolver.Selection(services.LevelRate)
		require.False(t, ok)

		// Work sets are disabled again because their parent was cleared.
		_, enabled, err := resolver.Options(ctx, services.LevelWorkSet)
		require.NoError(t, err)
		require.False(t, enabled)
	})

	t.Run("reset invalidates cached option lists", func(t *testing.T) {
		resolver, source := newResolver()

		resolver.Select(services.LevelCostCategory, categoryA)
		_, _, err := resolver.Options(ctx, services.LevelDetailCostCategory)
		require.NoError(t, err)
		_, _, err = resolver.Options(ctx, services.LevelDetailCostCategory)
		require.NoError(t, err)
		require.Equal(t, 1, source.detailCalls, "second read must come from cache")

		resolver.Select(services.LevelCostCategory, categoryA)
		_, _, err = resolver.Options(ctx, services.LevelDetailCostCategory)
		require.NoError(t, err)
		require.Equal(t, 2, source.detailCalls, "reset must drop the cached list")
	})

	t.Run("clearing a level disables its children", func(t *testing.T) {
		resolver, _ := newResolver()

		resolver.Select(services.LevelCostCategory, categoryA)
		resolver.Select(services.LevelDetailCostCategory, detailA.ID)
		resolver.Clear(services.LevelCostCategory)

		opts, enabled, err := resolver.Options(ctx, services.LevelDetailCostCategory)
		require.NoError(t, err)
		require.False(t, enabled)
		require.Nil(t, opts)
	})
}
