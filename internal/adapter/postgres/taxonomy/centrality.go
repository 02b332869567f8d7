package taxonomy

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/taxonomy-loader/internal/adapter/postgres"
	"github.com/heartmarshall/taxonomy-loader/internal/domain"
)

// centralityTable maps a target to the entity table that stores its degree
// and the relation column that references it.
func centralityTable(target domain.CentralityTarget) (table, column string, err error) {
	switch target {
	case domain.CentralityTargetSkills:
		return "skills", "skill_id", nil
	case domain.CentralityTargetOccupations:
		return "occupations", "occupation_id", nil
	default:
		return "", "", fmt.Errorf("centrality target %q: %w", target, domain.ErrValidation)
	}
}

// AggregateDegrees streams the number of occupation→skill relations per
// entity of target.
func (r *Repo) AggregateDegrees(ctx context.Context, modelID uuid.UUID, target domain.CentralityTarget) (domain.Cursor[domain.EdgeCount], error) {
	_, column, err := centralityTable(target)
	if err != nil {
		return nil, err
	}

	query := builder().
		Select(column+" AS entity_id", "COUNT(*) AS edge_count").
		From("occupation_skill_relations").
		Where(squirrel.Eq{"model_id": modelID}).
		GroupBy(column).
		OrderBy(column)

	cur, err := openCursor(ctx, r.q, query, toEdgeCount)
	if err != nil {
		return nil, postgres.MapError(err, "aggregate "+target.String(), uuid.Nil)
	}
	return cur, nil
}

const setDegreeCentralitySQL = `
UPDATE %s AS t
SET degree_centrality = v.edge_count
FROM unnest($2::uuid[], $3::int[]) AS v(id, edge_count)
WHERE t.model_id = $1 AND t.id = v.id`

// SetDegreeCentrality writes every count in one statement and returns how
// many stored entities it matched.
func (r *Repo) SetDegreeCentrality(ctx context.Context, modelID uuid.UUID, target domain.CentralityTarget, counts []domain.EdgeCount) (int, error) {
	table, _, err := centralityTable(target)
	if err != nil {
		return 0, err
	}
	if len(counts) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, len(counts))
	degrees := make([]int32, len(counts))
	for i, c := range counts {
		ids[i] = c.EntityID
		degrees[i] = int32(c.EdgeCount)
	}

	tag, err := r.q.Exec(ctx, fmt.Sprintf(setDegreeCentralitySQL, table), modelID, ids, degrees)
	if err != nil {
		return 0, postgres.MapError(err, table, uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}
