package codegen

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/relsynth/relsynth/actionir"
	"github.com/relsynth/relsynth/names"
	"github.com/relsynth/relsynth/relalg"
)

// Job is one independent compilation request for CompileMany: a root
// Relation, the TypeEnv it was typed against, and the name the
// resulting DataStructure should carry.
type Job struct {
	Root relalg.Relation
	Env  *relalg.TypeEnv
	Name string
}

// CompileMany compiles every Job concurrently using an errgroup, since
// independent top-level compilations only share read-only inputs (each
// Job's own Relation DAG and TypeEnv) and each writes to its own
// Codegen/DataStructure. It does not change the single-threaded
// execution model of any one generated data structure; it only
// parallelizes the act of generating several unrelated ones. Results
// are returned in the same order as jobs; the first job to fail cancels
// the rest via ctx.
func CompileMany(ctx context.Context, jobs []Job) ([]*actionir.DataStructure, error) {
	results := make([]*actionir.DataStructure, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			gen := New(job.Env, names.NewSource(), job.Name)
			ds, err := gen.Compile(job.Root)
			if err != nil {
				return err
			}
			results[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
