package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"shootdesk/internal/config"
	"shootdesk/internal/logging"
	"shootdesk/internal/naming"
	"shootdesk/internal/services"
	"shootdesk/internal/session"
	"shootdesk/internal/sidecar"
)

// Deliverable is one exported photograph with its sidecar record and
// caption.
type Deliverable struct {
	Filename string
	Meta     sidecar.ObjectMetadata
	AltText  string
}

// Planner turns a committed rename plan into delivery artifacts.
type Planner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewPlanner constructs a planner for the given configuration.
func NewPlanner(cfg *config.Config, logger *slog.Logger) *Planner {
	return &Planner{cfg: cfg, logger: logging.NewComponentLogger(logger, "export")}
}

// BuildDeliverables assembles one deliverable per plan entry. Every record
// must pass identity validation; warnings are logged and do not block.
func (p *Planner) BuildDeliverables(review *session.Review, plan *session.Plan) ([]Deliverable, error) {
	if plan == nil || len(plan.Entries) == 0 {
		return nil, services.Wrap(services.ErrValidation, "export", "build deliverables",
			"the session has no committed plan entries to export", nil)
	}

	out := make([]Deliverable, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		stack, ok := review.Stack(entry.StackID)
		if !ok {
			return nil, services.Wrap(services.ErrNotFound, "export", "build deliverables",
				fmt.Sprintf("plan entry %s references a stack missing from the session", entry.StackID), nil)
		}

		meta := sidecar.GenerateObjectMeta(sidecar.MetaInputs{
			JobID:           plan.SessionID,
			Date:            entry.Components.Date,
			ShootCode:       entry.Components.ShootCode,
			RoomType:        stack.RoomType,
			MergedFilename:  entry.Filename,
			Version:         entry.Components.Version,
			SourceFilenames: entry.SourceFilenames,
			HDRBracketCount: bracketCount(stack),
			FileFormat:      naming.FinalExtension,
		})
		report := sidecar.ValidateObjectMeta(meta)
		if !report.IsValid {
			return nil, services.Wrap(services.ErrValidation, "export", "build deliverables",
				fmt.Sprintf("metadata for %s is incomplete: %s", entry.Filename, strings.Join(report.Errors, "; ")), nil)
		}
		for _, warning := range report.Warnings {
			p.logger.Warn("metadata incomplete",
				logging.String("filename", entry.Filename),
				logging.String("detail", warning),
			)
		}

		out = append(out, Deliverable{
			Filename: entry.Filename,
			Meta:     meta,
			AltText:  sidecar.GenerateGermanAltText(stack.RoomType, ""),
		})
	}
	return out, nil
}

// WriteArtifacts stores the sidecar JSON records, the alt-text file, and
// (when configured) the plan manifest through the storage backend.
func (p *Planner) WriteArtifacts(ctx context.Context, storage Storage, plan *session.Plan, deliverables []Deliverable) error {
	logger := logging.WithContext(ctx, p.logger)

	altEntries := make([]sidecar.AltTextEntry, 0, len(deliverables))
	for _, deliverable := range deliverables {
		serialized, err := sidecar.SerializeObjectMeta(deliverable.Meta)
		if err != nil {
			return err
		}
		key := deliverable.Filename + ".json"
		location, err := storage.Put(ctx, key, strings.NewReader(serialized+"\n"))
		if err != nil {
			return fmt.Errorf("store sidecar %s: %w", key, err)
		}
		logger.Debug("sidecar written", logging.String("location", location))
		altEntries = append(altEntries, sidecar.AltTextEntry{
			Filename: deliverable.Filename,
			AltText:  deliverable.AltText,
		})
	}

	altFile := sidecar.GenerateAltTextFile(altEntries)
	if _, err := storage.Put(ctx, p.cfg.Captions.AltTextFilename, strings.NewReader(altFile)); err != nil {
		return fmt.Errorf("store alt-text file: %w", err)
	}

	if p.cfg.Export.WriteManifest {
		manifest, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return fmt.Errorf("serialize manifest: %w", err)
		}
		if _, err := storage.Put(ctx, p.cfg.Export.ManifestName, strings.NewReader(string(manifest)+"\n")); err != nil {
			return fmt.Errorf("store manifest: %w", err)
		}
	}

	logger.Info("export artifacts written",
		logging.Int("files", len(deliverables)),
		logging.String(logging.FieldSessionID, plan.SessionID),
	)
	return nil
}

// bracketCount is the ladder size of one bracket group, not the total
// exposure count of the stack.
func bracketCount(stack session.Stack) int {
	if len(stack.EVOffsets) > 0 {
		return len(stack.EVOffsets)
	}
	return stack.ImageCount
}
