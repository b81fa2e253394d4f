package recordservice

import (
	"context"
	"testing"

	"github.com/ianroy/makerflowPM/internal/database"
	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) (*Local, *database.Repository) {
	t.Helper()
	db, err := database.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := database.NewRepository(db)
	return NewLocal(repo), repo
}

func createTask(t *testing.T, repo *database.Repository, fields map[string]string) *models.Record {
	t.Helper()
	rec, err := repo.Records.Create(context.Background(), models.KindTasks, fields)
	require.NoError(t, err)
	return rec
}

func TestSaveCanonicalizesEnumCase(t *testing.T) {
	svc, repo := newTestLocal(t)
	rec := createTask(t, repo, map[string]string{"title": "Cut panels", "status": "Todo", "priority": "Low", "project": "Lab"})

	res, err := svc.Save(context.Background(), models.KindTasks, rec.ID, map[string]string{"priority": "high"})
	require.NoError(t, err)
	assert.Equal(t, "High", res.Canonical["priority"])
	assert.Equal(t, "Cut panels", res.Canonical["title"])

	stored, err := repo.Records.Get(context.Background(), models.KindTasks, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "High", stored.Get("priority"))
}

func TestSaveRejections(t *testing.T) {
	tests := []struct {
		name    string
		changed map[string]string
		code    string
	}{
		{"invalid option", map[string]string{"priority": "Urgent"}, CodeInvalidOption},
		{"invalid number", map[string]string{"estimate_hours": "lots"}, CodeInvalidNumber},
		{"invalid date", map[string]string{"due_date": "next tuesday"}, CodeInvalidDate},
		{"unknown field", map[string]string{"color": "red"}, CodeUnknownField},
		{"required field", map[string]string{"title": "  "}, CodeRequiredField},
		{"required relation", map[string]string{"project": ""}, CodeRequiredRelation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestLocal(t)
			rec := createTask(t, repo, map[string]string{"title": "Keep", "status": "Todo", "project": "Lab"})

			_, err := svc.Save(context.Background(), models.KindTasks, rec.ID, tt.changed)
			re, ok := AsRemoteError(err)
			require.True(t, ok, "expected RemoteError, got %v", err)
			assert.Equal(t, tt.code, re.Code)

			stored, err := repo.Records.Get(context.Background(), models.KindTasks, rec.ID)
			require.NoError(t, err)
			assert.Equal(t, "Keep", stored.Get("title"))
			assert.Equal(t, "Lab", stored.Get("project"))
		})
	}
}

func TestSaveRequiredRelationCarriesLabel(t *testing.T) {
	svc, repo := newTestLocal(t)
	rec := createTask(t, repo, map[string]string{"title": "x", "project": "Lab"})

	_, err := svc.Save(context.Background(), models.KindTasks, rec.ID, map[string]string{"project": ""})
	re, ok := AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, "Project", re.Param("relation"))
}

func TestSaveReferenceFields(t *testing.T) {
	svc, repo := newTestLocal(t)
	ctx := context.Background()
	rec := createTask(t, repo, map[string]string{"title": "x", "project": "Lab"})

	// free text while no users are known
	res, err := svc.Save(ctx, models.KindTasks, rec.ID, map[string]string{"assignee": "Anyone"})
	require.NoError(t, err)
	assert.Equal(t, "Anyone", res.Canonical["assignee"])

	require.NoError(t, repo.Lookups.AddPerson(ctx, "user", "Priya Shah"))

	res, err = svc.Save(ctx, models.KindTasks, rec.ID, map[string]string{"assignee": "priya shah"})
	require.NoError(t, err)
	assert.Equal(t, "Priya Shah", res.Canonical["assignee"])

	_, err = svc.Save(ctx, models.KindTasks, rec.ID, map[string]string{"assignee": "Nobody"})
	re, ok := AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidOption, re.Code)
}

func TestSaveRecomputesIntakeScore(t *testing.T) {
	svc, repo := newTestLocal(t)
	ctx := context.Background()
	rec, err := repo.Records.Create(ctx, models.KindIntake, map[string]string{
		"title": "Request", "urgency": "3", "impact": "3", "effort": "3", "score": "27",
	})
	require.NoError(t, err)

	res, err := svc.Save(ctx, models.KindIntake, rec.ID, map[string]string{"urgency": "5"})
	require.NoError(t, err)
	assert.Equal(t, "45", res.Canonical["score"])

	_, err = svc.Save(ctx, models.KindIntake, rec.ID, map[string]string{"score": "100"})
	re, ok := AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, CodeReadOnlyField, re.Code)
}

func TestSaveForbiddenAndMissing(t *testing.T) {
	svc, repo := newTestLocal(t)
	ctx := context.Background()
	rec := createTask(t, repo, map[string]string{"title": "x", "project": "Lab"})

	_, err := svc.Save(ctx, models.KindTasks, rec.ID+100, map[string]string{"title": "y"})
	re, ok := AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, re.Code)

	require.NoError(t, repo.Lookups.SetPermissions(ctx, models.KindTasks, models.Permissions{CanDelete: true}))
	_, err = svc.Save(ctx, models.KindTasks, rec.ID, map[string]string{"title": "y"})
	re, ok = AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, CodeForbidden, re.Code)
}

func TestDeleteRequiresStatus(t *testing.T) {
	svc, repo := newTestLocal(t)
	ctx := context.Background()
	require.NoError(t, repo.Lookups.SetPermissions(ctx, models.KindTasks, models.Permissions{
		CanEdit: true, CanDelete: true, DeleteRequiresStatus: []string{"Done"},
	}))
	open := createTask(t, repo, map[string]string{"title": "open", "status": "Todo", "project": "Lab"})
	done := createTask(t, repo, map[string]string{"title": "done", "status": "Done", "project": "Lab"})

	err := svc.Delete(ctx, models.KindTasks, open.ID)
	re, ok := AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, CodeDeleteBlockedStatus, re.Code)
	assert.Equal(t, "Done", re.Param("statuses"))

	require.NoError(t, svc.Delete(ctx, models.KindTasks, done.ID))
	records, err := svc.List(ctx, models.KindTasks, ListParams{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, open.ID, records[0].ID)
}

func TestLookupsIncludePeopleAndPermissions(t *testing.T) {
	svc, repo := newTestLocal(t)
	ctx := context.Background()
	require.NoError(t, repo.Lookups.AddPerson(ctx, "space", "MakerLab"))
	require.NoError(t, repo.Lookups.SetPermissions(ctx, models.KindAssets, models.Permissions{CanEdit: false}))

	l, err := svc.Lookups(ctx)
	require.NoError(t, err)
	require.Len(t, l.Spaces, 1)
	assert.Equal(t, "MakerLab", l.Spaces[0].Name)
	assert.False(t, l.PermissionsFor(models.KindAssets).CanEdit)
	assert.True(t, l.PermissionsFor(models.KindTasks).CanEdit)
	assert.Equal(t, models.TaskStatuses, l.StatusesFor(models.KindTasks))
}

func TestIntakeScore(t *testing.T) {
	assert.Equal(t, 25, IntakeScore(5, 5, 5))
	assert.Equal(t, 125, IntakeScore(5, 5, 1))
	assert.Equal(t, 1, IntakeScore(0, 1, 9))
}

func TestSeedIsDeterministic(t *testing.T) {
	ctx := context.Background()
	counts := SeedCounts{models.KindTasks: 5, models.KindIntake: 3}

	_, repoA := newTestLocal(t)
	_, repoB := newTestLocal(t)
	require.NoError(t, Seed(ctx, repoA, counts, 7))
	require.NoError(t, Seed(ctx, repoB, counts, 7))

	a, err := repoA.Records.List(ctx, models.KindTasks, "")
	require.NoError(t, err)
	b, err := repoB.Records.List(ctx, models.KindTasks, "")
	require.NoError(t, err)
	require.Len(t, a, 5)
	for i := range a {
		assert.Equal(t, a[i].Fields, b[i].Fields)
	}

	intake, err := repoA.Records.List(ctx, models.KindIntake, "")
	require.NoError(t, err)
	require.Len(t, intake, 3)
	for _, rec := range intake {
		want := IntakeScore(atoiDefault(rec.Get("urgency"), 0), atoiDefault(rec.Get("impact"), 0), atoiDefault(rec.Get("effort"), 0))
		assert.Equal(t, want, atoiDefault(rec.Get("score"), -1))
	}
}

func TestListFiltersByScope(t *testing.T) {
	svc, repo := newTestLocal(t)
	ctx := context.Background()
	fab := createTask(t, repo, map[string]string{"title": "Laser", "status": "Todo", "project": "Lab", "space": "Fab Lab"})
	createTask(t, repo, map[string]string{"title": "Planer", "status": "Todo", "project": "Lab", "space": "Wood Shop"})
	team := createTask(t, repo, map[string]string{"title": "Poster", "status": "Todo", "project": "Lab", "team": "fab lab"})

	records, err := svc.List(ctx, models.KindTasks, ListParams{Scope: "fab lab"})
	require.NoError(t, err)
	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []int64{fab.ID, team.ID}, ids)

	for _, scope := range []string{"", "all", " ALL "} {
		records, err = svc.List(ctx, models.KindTasks, ListParams{Scope: scope})
		require.NoError(t, err)
		assert.Len(t, records, 3, "scope %q", scope)
	}

	records, err = svc.List(ctx, models.KindTasks, ListParams{Scope: "Paint Booth"})
	require.NoError(t, err)
	assert.Empty(t, records)
}
