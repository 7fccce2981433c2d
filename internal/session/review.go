package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"shootdesk/internal/counter"
	"shootdesk/internal/logging"
	"shootdesk/internal/naming"
	"shootdesk/internal/roomtype"
	"shootdesk/internal/services"
)

// Review is the mutable in-memory model of one capture-review session.
// All methods are single-threaded by contract; a session is owned by one
// operator process (enforced by the session lock in lock.go).
type Review struct {
	session  Session
	stacks   map[string]*Stack
	order    []string
	indexes  *counter.IndexTracker
	versions *counter.VersionTracker

	defaultRawExt string
	logger        *slog.Logger
}

// NewReview creates an empty review for the session.
func NewReview(sess Session, logger *slog.Logger) *Review {
	return &Review{
		session:       sess,
		stacks:        make(map[string]*Stack),
		order:         nil,
		indexes:       counter.NewIndexTracker(),
		versions:      counter.NewVersionTracker(),
		defaultRawExt: "dng",
		logger:        logging.NewComponentLogger(logger, "session"),
	}
}

// NewReviewFromState rehydrates a review from persisted stacks and counter
// snapshots. Stacks are reordered by their stored order index and renumbered
// densely.
func NewReviewFromState(sess Session, stacks []Stack, indexSnapshot, versionSnapshot map[string]int, logger *slog.Logger) *Review {
	r := NewReview(sess, logger)
	sorted := append([]Stack(nil), stacks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].OrderIndex < sorted[j].OrderIndex })
	for i := range sorted {
		stack := sorted[i]
		stack.OrderIndex = len(r.order)
		r.stacks[stack.ID] = &stack
		r.order = append(r.order, stack.ID)
	}
	r.indexes.Restore(indexSnapshot)
	r.versions.Restore(versionSnapshot)
	return r
}

// Session returns the session header.
func (r *Review) Session() Session {
	return r.session
}

// Indexes exposes the subject-index tracker for inspection and resume
// overrides.
func (r *Review) Indexes() *counter.IndexTracker {
	return r.indexes
}

// Versions exposes the version tracker for inspection and resume overrides.
func (r *Review) Versions() *counter.VersionTracker {
	return r.versions
}

// SetDefaultRawExtension sets the raw-frame extension used when a stack does
// not carry its own.
func (r *Review) SetDefaultRawExtension(ext string) {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext != "" {
		r.defaultRawExt = ext
	}
}

// AddStack appends a new stack at the end of the display order.
func (r *Review) AddStack(imageCount int, previewRef string) (Stack, error) {
	if imageCount < 1 {
		return Stack{}, services.Wrap(services.ErrValidation, "session", "add stack", fmt.Sprintf("image count %d must be positive", imageCount), nil)
	}
	stack := &Stack{
		ID:         uuid.NewString(),
		OrderIndex: len(r.order),
		ImageCount: imageCount,
		PreviewRef: strings.TrimSpace(previewRef),
	}
	r.stacks[stack.ID] = stack
	r.order = append(r.order, stack.ID)
	r.logger.Debug("stack added",
		logging.String(logging.FieldStackID, stack.ID),
		logging.Int("image_count", imageCount),
		logging.Int("order_index", stack.OrderIndex),
	)
	return stack.clone(), nil
}

// Stacks returns copies of all stacks in display order. Deletion-marked
// stacks are included; the flag only affects export planning.
func (r *Review) Stacks() []Stack {
	out := make([]Stack, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.stacks[id].clone())
	}
	return out
}

// Stack returns a copy of one stack by ID.
func (r *Review) Stack(id string) (Stack, bool) {
	stack, ok := r.stacks[id]
	if !ok {
		return Stack{}, false
	}
	return stack.clone(), true
}

// Len reports the number of stacks in the session.
func (r *Review) Len() int {
	return len(r.order)
}

// Select marks stacks as selected for a subsequent bulk operation.
func (r *Review) Select(ids ...string) error {
	return r.setSelected(true, ids)
}

// Deselect clears the selection flag on the given stacks.
func (r *Review) Deselect(ids ...string) error {
	return r.setSelected(false, ids)
}

func (r *Review) setSelected(selected bool, ids []string) error {
	stacks, err := r.resolve(ids)
	if err != nil {
		return err
	}
	for _, stack := range stacks {
		stack.Selected = selected
	}
	return nil
}

// SelectedIDs returns the IDs of selected stacks in display order.
func (r *Review) SelectedIDs() []string {
	var out []string
	for _, id := range r.order {
		if r.stacks[id].Selected {
			out = append(out, id)
		}
	}
	return out
}

// MoveStack removes the stack at from and reinserts it at to, then renumbers
// every order index 0..N-1 so the sequence stays dense.
func (r *Review) MoveStack(from, to int) error {
	if from < 0 || from >= len(r.order) {
		return services.Wrap(services.ErrValidation, "session", "move stack", fmt.Sprintf("source position %d out of range 0..%d", from, len(r.order)-1), nil)
	}
	if to < 0 || to >= len(r.order) {
		return services.Wrap(services.ErrValidation, "session", "move stack", fmt.Sprintf("target position %d out of range 0..%d", to, len(r.order)-1), nil)
	}
	if from == to {
		return nil
	}

	id := r.order[from]
	r.order = append(r.order[:from], r.order[from+1:]...)
	r.order = append(r.order[:to], append([]string{id}, r.order[to:]...)...)
	r.renumber()

	r.logger.Debug("stack moved",
		logging.String(logging.FieldStackID, id),
		logging.Int("from", from),
		logging.Int("to", to),
	)
	return nil
}

func (r *Review) renumber() {
	for i, id := range r.order {
		r.stacks[id].OrderIndex = i
	}
}

// AssignRoomType assigns a room type to the given stacks. The label must
// belong to the room catalog; its normalized token is stored alongside.
func (r *Review) AssignRoomType(ids []string, label string) error {
	if !roomtype.Known(label) {
		return services.Wrap(services.ErrValidation, "session", "assign room",
			fmt.Sprintf("unknown room type %q (see `shootdesk rooms` for the catalog)", label), nil)
	}
	stacks, err := r.resolve(ids)
	if err != nil {
		return err
	}
	token := roomtype.Normalize(label)
	for _, stack := range stacks {
		stack.RoomType = label
		stack.RoomToken = token
	}
	r.logger.Info("room type assigned",
		logging.String("room", label),
		logging.Int("stacks", len(stacks)),
	)
	return nil
}

// ToggleDeletion flips the deletion mark on the given stacks. Marked stacks
// stay in the session; they are only excluded from export planning.
func (r *Review) ToggleDeletion(ids ...string) error {
	stacks, err := r.resolve(ids)
	if err != nil {
		return err
	}
	for _, stack := range stacks {
		stack.MarkedForDeletion = !stack.MarkedForDeletion
	}
	return nil
}

// ToggleUncertain flips the uncertainty flag on the given stacks.
func (r *Review) ToggleUncertain(ids ...string) error {
	stacks, err := r.resolve(ids)
	if err != nil {
		return err
	}
	for _, stack := range stacks {
		stack.FlaggedUncertain = !stack.FlaggedUncertain
	}
	return nil
}

// SetEVOffsets overrides the bracket ladder for one stack.
func (r *Review) SetEVOffsets(id string, offsets []int) error {
	stacks, err := r.resolve([]string{id})
	if err != nil {
		return err
	}
	if len(offsets) == 0 {
		return services.Wrap(services.ErrValidation, "session", "set ev offsets", "bracket ladder must not be empty", nil)
	}
	stacks[0].EVOffsets = append([]int(nil), offsets...)
	return nil
}

func (r *Review) resolve(ids []string) ([]*Stack, error) {
	if len(ids) == 0 {
		return nil, services.Wrap(services.ErrValidation, "session", "resolve stacks", "no stack IDs given", nil)
	}
	out := make([]*Stack, 0, len(ids))
	for _, id := range ids {
		stack, ok := r.stacks[id]
		if !ok {
			return nil, services.Wrap(services.ErrNotFound, "session", "resolve stacks", fmt.Sprintf("stack %s is not part of this session", id), nil)
		}
		out = append(out, stack)
	}
	return out, nil
}

// PlannedName is one line of the rename preview.
type PlannedName struct {
	StackID          string
	OrderIndex       int
	RoomType         string
	Filename         string
	IsDeletionMarked bool
	IsUncertain      bool
	MissingRoom      bool
}

// PreviewFilenames computes the planned final filename for every stack in
// display order without touching tracker state: it advances clones, so
// repeated calls always yield the same result until the session changes.
// Deletion-marked and room-less stacks appear in the preview with an empty
// filename and do not consume an index.
func (r *Review) PreviewFilenames() ([]PlannedName, error) {
	indexes := r.indexes.Clone()
	versions := r.versions.Clone()

	out := make([]PlannedName, 0, len(r.order))
	for _, id := range r.order {
		stack := r.stacks[id]
		planned := PlannedName{
			StackID:          stack.ID,
			OrderIndex:       stack.OrderIndex,
			RoomType:         stack.RoomType,
			IsDeletionMarked: stack.MarkedForDeletion,
			IsUncertain:      stack.FlaggedUncertain,
		}
		switch {
		case stack.MarkedForDeletion:
			// no filename, no index consumed
		case stack.RoomToken == "":
			planned.MissingRoom = true
		default:
			components, err := r.nextComponents(stack, indexes, versions)
			if err != nil {
				return nil, err
			}
			filename, err := naming.GenerateFinalFilename(components)
			if err != nil {
				return nil, err
			}
			planned.Filename = filename
		}
		out = append(out, planned)
	}
	return out, nil
}

func (r *Review) nextComponents(stack *Stack, indexes *counter.IndexTracker, versions *counter.VersionTracker) (naming.FinalComponents, error) {
	components := naming.FinalComponents{
		Date:      r.session.ShootDate,
		ShootCode: r.session.ShootCode,
		Room:      stack.RoomToken,
		Index:     indexes.GetNextIndex(stack.RoomToken),
	}
	components.Version = versions.GetNextVersion(components.BaseName())
	return components, nil
}

// PlanEntry is one delivered file of a committed export plan.
type PlanEntry struct {
	StackID          string
	Filename         string
	Components       naming.FinalComponents
	SourceFilenames  []string
	FlaggedUncertain bool
}

// Plan is the authoritative export plan produced by ApplyRenaming.
type Plan struct {
	SessionID   string
	ShootCode   string
	ShootDate   string
	CommittedAt time.Time
	Entries     []PlanEntry
}

// ApplyRenaming commits the current preview as the authoritative export
// plan. It validates first, then advances the session trackers strictly in
// display order so indices are assigned exactly as previewed. Tracker
// mutations are not rolled back on later failure; the session, not the
// individual rename, is the unit of recovery.
func (r *Review) ApplyRenaming(ctx context.Context) (*Plan, error) {
	logger := logging.WithContext(ctx, r.logger)

	var missing []string
	for _, id := range r.order {
		stack := r.stacks[id]
		if !stack.MarkedForDeletion && stack.RoomToken == "" {
			missing = append(missing, fmt.Sprintf("#%d", stack.OrderIndex))
		}
	}
	if len(missing) > 0 {
		return nil, services.Wrap(services.ErrValidation, "session", "commit renaming",
			fmt.Sprintf("stacks %s have no room type assigned", strings.Join(missing, ", ")), nil)
	}

	plan := &Plan{
		SessionID:   r.session.ID,
		ShootCode:   r.session.ShootCode,
		ShootDate:   r.session.ShootDate,
		CommittedAt: time.Now().UTC(),
	}
	for _, id := range r.order {
		stack := r.stacks[id]
		if stack.MarkedForDeletion {
			continue
		}
		components, err := r.nextComponents(stack, r.indexes, r.versions)
		if err != nil {
			return nil, err
		}
		filename, err := naming.GenerateFinalFilename(components)
		if err != nil {
			return nil, err
		}
		sources, err := r.rawFrameNames(stack, components)
		if err != nil {
			return nil, err
		}
		plan.Entries = append(plan.Entries, PlanEntry{
			StackID:          stack.ID,
			Filename:         filename,
			Components:       components,
			SourceFilenames:  sources,
			FlaggedUncertain: stack.FlaggedUncertain,
		})
	}

	now := plan.CommittedAt
	r.session.CommittedAt = &now
	r.session.UpdatedAt = now

	logger.Info("renaming committed",
		logging.Int("files", len(plan.Entries)),
		logging.Int("stacks", len(r.order)),
	)
	return plan, nil
}

// rawFrameNames renders the raw bracket-frame filenames for every exposure
// of the stack. Exposures walk the EV ladder; each full ladder starts a new
// bracket group.
func (r *Review) rawFrameNames(stack *Stack, components naming.FinalComponents) ([]string, error) {
	ladder := stack.EVOffsets
	if len(ladder) == 0 {
		ladder = defaultLadder(stack.ImageCount)
	}
	ext := stack.RawExtension
	if ext == "" {
		ext = r.defaultRawExt
	}

	names := make([]string, 0, stack.ImageCount)
	for i := 0; i < stack.ImageCount; i++ {
		raw := naming.RawFrameComponents{
			FinalComponents: components,
			StackNumber:     i/len(ladder) + 1,
			EV:              ladder[i%len(ladder)],
			Extension:       ext,
		}
		name, err := naming.GenerateRawFrameFilename(raw)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}
