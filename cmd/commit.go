package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"courtside/internal/bootstrap"
	"courtside/internal/bootstrap/logging"
	"courtside/internal/domain/catalog"
	"courtside/internal/domain/ingest"
	"courtside/internal/errs"
	ingestuc "courtside/internal/usecase/ingest"
	"courtside/internal/usecase/moderation"
)

// commitCmd persists reviewed candidates from a prior `search --json` run.
// Candidates are read as a JSON array from --file or stdin; each one lands
// in pending state awaiting moderation.
var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Persist search candidates as pending catalog records",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *ingestuc.Service, _ *moderation.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		file, _ := cmd.Flags().GetString("file")
		ref, _ := cmd.Flags().GetString("ref")

		candidates, err := readCandidates(cmd, file)
		if err != nil {
			return err
		}
		if ref != "" {
			candidates = selectByRef(candidates, ref)
			if len(candidates) == 0 {
				return fmt.Errorf("no candidate with ref %s in input", ref)
			}
		}
		if len(candidates) == 0 {
			return errors.New("no candidates to commit")
		}

		out := cmd.OutOrStdout()
		var failed int
		for _, cand := range candidates {
			id, err := commitOne(ctx, svc, cand)
			switch {
			case errors.Is(err, ingestuc.ErrDuplicateRecord):
				failed++
				fmt.Fprintf(out, "skip %s %q: %v\n", cand.Ref, cand.Name, err)
			case errors.Is(err, ingestuc.ErrInvalidCandidate):
				failed++
				fmt.Fprintf(out, "skip %s %q: %v\n", cand.Ref, cand.Name, err)
			case err != nil:
				return errs.Wrapf(err, "commit candidate %s", cand.Ref)
			default:
				fmt.Fprintf(out, "committed %s %q as %s #%d (pending approval)\n", cand.Ref, cand.Name, cand.Kind, id)
			}
		}

		if failed == len(candidates) {
			return errors.New("no candidates were committed")
		}
		return nil
	}),
}

func commitOne(ctx context.Context, svc *ingestuc.Service, cand ingest.Candidate) (uint64, error) {
	if cand.Kind == catalog.KindEvent {
		return svc.CommitEvent(ctx, cand)
	}
	return svc.CommitFacility(ctx, cand)
}

func readCandidates(cmd *cobra.Command, file string) ([]ingest.Candidate, error) {
	var reader io.Reader
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, errs.Wrap(err, "open candidate file")
		}
		defer f.Close()
		reader = f
	} else {
		reader = cmd.InOrStdin()
	}

	var candidates []ingest.Candidate
	if err := json.NewDecoder(reader).Decode(&candidates); err != nil {
		return nil, errs.Wrap(err, "decode candidate JSON")
	}
	return candidates, nil
}

func selectByRef(candidates []ingest.Candidate, ref string) []ingest.Candidate {
	var matched []ingest.Candidate
	for _, cand := range candidates {
		if cand.Ref == ref {
			matched = append(matched, cand)
		}
	}
	return matched
}

func init() {
	rootCmd.AddCommand(commitCmd)

	commitCmd.Flags().String("file", "", "Candidate JSON file from `search --json` (default: stdin)")
	commitCmd.Flags().String("ref", "", "Commit only the candidate with this ref")
}
