package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"confsched/internal/domain"
)

// fakeScheduleRepo is an in-memory ScheduleRepository for tests. Release and
// ResetDraft mirror the postgres repository's semantics, including the
// in-place retirement of the draft row and the concurrent-modification check.
type fakeScheduleRepo struct {
	versions   map[string]*domain.ScheduleVersion
	placements map[string]map[string]*domain.SlotPlacement // versionID -> itemID
	nextVer    int
	nextPl     int

	createErr  error // if set, CreateVersion returns this error
	upsertErr  error
	listErr    error
	releaseErr error
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		versions:   make(map[string]*domain.ScheduleVersion),
		placements: make(map[string]map[string]*domain.SlotPlacement),
		nextVer:    1,
		nextPl:     1,
	}
}

func (f *fakeScheduleRepo) CreateVersion(ctx context.Context, v *domain.ScheduleVersion) error {
	if f.createErr != nil {
		return f.createErr
	}
	v.ID = fmt.Sprintf("ver-%d", f.nextVer)
	f.nextVer++
	f.versions[v.ID] = v
	f.placements[v.ID] = make(map[string]*domain.SlotPlacement)
	return nil
}

func (f *fakeScheduleRepo) GetVersionByID(ctx context.Context, id string) (*domain.ScheduleVersion, error) {
	if v, ok := f.versions[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleRepo) GetDraftByEventID(ctx context.Context, eventID string) (*domain.ScheduleVersion, error) {
	for _, v := range f.versions {
		if v.EventID == eventID && v.IsDraft {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeScheduleRepo) ListReleasedByEventID(ctx context.Context, eventID string) ([]*domain.ScheduleVersion, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.ScheduleVersion
	for _, v := range f.versions {
		if v.EventID == eventID && !v.IsDraft {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReleasedAt.Equal(*out[j].ReleasedAt) {
			return out[i].ReleasedAt.Before(*out[j].ReleasedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeScheduleRepo) UpsertPlacement(ctx context.Context, p *domain.SlotPlacement) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	byItem, ok := f.placements[p.VersionID]
	if !ok {
		byItem = make(map[string]*domain.SlotPlacement)
		f.placements[p.VersionID] = byItem
	}
	if existing, ok := byItem[p.ItemID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = fmt.Sprintf("pl-%d", f.nextPl)
		f.nextPl++
	}
	cp := *p
	byItem[p.ItemID] = &cp
	return nil
}

func (f *fakeScheduleRepo) DeletePlacement(ctx context.Context, versionID, itemID string) error {
	byItem := f.placements[versionID]
	if _, ok := byItem[itemID]; !ok {
		return domain.ErrNotFound
	}
	delete(byItem, itemID)
	return nil
}

func (f *fakeScheduleRepo) ListPlacements(ctx context.Context, versionID string) ([]*domain.SlotPlacement, error) {
	var out []*domain.SlotPlacement
	for _, p := range f.placements[versionID] {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeScheduleRepo) Release(ctx context.Context, draftID, label, summary string, releasedAt time.Time) (*domain.ScheduleVersion, *domain.ScheduleVersion, error) {
	if f.releaseErr != nil {
		return nil, nil, f.releaseErr
	}
	draft, ok := f.versions[draftID]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	if !draft.IsDraft {
		return nil, nil, domain.ErrConcurrentModification
	}
	for _, v := range f.versions {
		if v.EventID == draft.EventID && !v.IsDraft && v.ReleaseLabel != nil && *v.ReleaseLabel == label {
			return nil, nil, domain.ErrDuplicateLabel
		}
	}

	// The draft row is retired in place, keeping its ID and placements.
	draft.IsDraft = false
	draft.ReleaseLabel = &label
	draft.ReleasedAt = &releasedAt
	draft.ChangeSummary = summary

	newDraft := &domain.ScheduleVersion{
		EventID:   draft.EventID,
		IsDraft:   true,
		CreatedAt: releasedAt,
	}
	if err := f.CreateVersion(ctx, newDraft); err != nil {
		return nil, nil, err
	}
	f.copyPlacements(draftID, newDraft.ID)
	return draft, newDraft, nil
}

func (f *fakeScheduleRepo) ResetDraft(ctx context.Context, draftID, targetVersionID string) error {
	draft, ok := f.versions[draftID]
	if !ok {
		return domain.ErrNotFound
	}
	if !draft.IsDraft {
		return domain.ErrConcurrentModification
	}
	target, ok := f.versions[targetVersionID]
	if !ok || target.IsDraft || target.EventID != draft.EventID {
		return domain.ErrNotFound
	}
	f.placements[draftID] = make(map[string]*domain.SlotPlacement)
	f.copyPlacements(targetVersionID, draftID)
	return nil
}

func (f *fakeScheduleRepo) copyPlacements(fromID, toID string) {
	for itemID, p := range f.placements[fromID] {
		cp := *p
		cp.ID = fmt.Sprintf("pl-%d", f.nextPl)
		f.nextPl++
		cp.VersionID = toID
		f.placements[toID][itemID] = &cp
	}
}

// seedDraft stores a draft version for eventID and returns it.
func seedDraft(f *fakeScheduleRepo, eventID string) *domain.ScheduleVersion {
	draft := &domain.ScheduleVersion{EventID: eventID, IsDraft: true, CreatedAt: ts(8, 0)}
	_ = f.CreateVersion(context.Background(), draft)
	return draft
}

// fakeRegistry is an in-memory ItemRegistry. Visibility follows the
// production predicate: only confirmed items are publicly visible. Like the
// production registry it can fall back to a break store, so breaks created
// mid-test resolve without re-registering.
type fakeRegistry struct {
	items  map[string]domain.Schedulable
	breaks *fakeBreakRepo
	err    error
}

func newFakeRegistry(items ...domain.Schedulable) *fakeRegistry {
	byID := make(map[string]domain.Schedulable, len(items))
	for _, item := range items {
		byID[item.ItemID()] = item
	}
	return &fakeRegistry{items: byID}
}

func (f *fakeRegistry) GetItem(ctx context.Context, itemID string) (domain.Schedulable, error) {
	if f.err != nil {
		return nil, f.err
	}
	if item, ok := f.items[itemID]; ok {
		return item, nil
	}
	if f.breaks != nil {
		if b, err := f.breaks.GetByID(ctx, itemID); err == nil {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistry) ListItemsByEventID(ctx context.Context, eventID string) ([]domain.Schedulable, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := make([]string, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []domain.Schedulable
	for _, id := range ids {
		if f.items[id].ItemEventID() == eventID {
			out = append(out, f.items[id])
		}
	}
	if f.breaks != nil {
		breaks, _ := f.breaks.ListByEventID(ctx, eventID)
		for _, b := range breaks {
			if _, ok := f.items[b.ID]; !ok {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (f *fakeRegistry) IsPubliclyVisible(state domain.ItemState) bool {
	return state == domain.StateConfirmed
}

// fakeRoomRepo is an in-memory RoomRepository.
type fakeRoomRepo struct {
	rooms  map[string]*domain.Room
	nextID int
}

func newFakeRoomRepo(rooms ...*domain.Room) *fakeRoomRepo {
	f := &fakeRoomRepo{rooms: make(map[string]*domain.Room), nextID: 1}
	for _, r := range rooms {
		f.rooms[r.ID] = r
	}
	return f
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	room.ID = fmt.Sprintf("room-%d", f.nextID)
	f.nextID++
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if r, ok := f.rooms[id]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRoomRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Room, error) {
	var out []*domain.Room
	for _, r := range f.rooms {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeEventRepo is an in-memory EventRepository.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error // if set, Create returns this error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
	for _, e := range events {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	for _, e := range f.byID {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeAvailability serves fixed windows per resource. A missing key means no
// windows, which the detector treats as always available.
type fakeAvailability struct {
	roomWindows    map[string][]domain.TimeWindow
	speakerWindows map[string][]domain.TimeWindow
}

func newFakeAvailability() *fakeAvailability {
	return &fakeAvailability{
		roomWindows:    make(map[string][]domain.TimeWindow),
		speakerWindows: make(map[string][]domain.TimeWindow),
	}
}

func (f *fakeAvailability) RoomAvailability(ctx context.Context, roomID string) ([]domain.TimeWindow, error) {
	return f.roomWindows[roomID], nil
}

// SpeakerUnavailability narrows to windows overlapping [from, to), matching
// the provider contract.
func (f *fakeAvailability) SpeakerUnavailability(ctx context.Context, speakerID string, from, to time.Time) ([]domain.TimeWindow, error) {
	var windows []domain.TimeWindow
	for _, w := range f.speakerWindows[speakerID] {
		if w.Overlaps(from, to) {
			windows = append(windows, w)
		}
	}
	return windows, nil
}

// fakeBreakRepo is an in-memory BreakRepository.
type fakeBreakRepo struct {
	byID map[string]*domain.Break
	err  error // if set, Create returns this error
}

func newFakeBreakRepo() *fakeBreakRepo {
	return &fakeBreakRepo{byID: make(map[string]*domain.Break)}
}

func (f *fakeBreakRepo) Create(ctx context.Context, b *domain.Break) error {
	if f.err != nil {
		return f.err
	}
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBreakRepo) Update(ctx context.Context, b *domain.Break) error {
	if _, ok := f.byID[b.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBreakRepo) GetByID(ctx context.Context, id string) (*domain.Break, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBreakRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Break, error) {
	var out []*domain.Break
	for _, b := range f.byID {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeSpeakerDirectory resolves speakers from a fixed map.
type fakeSpeakerDirectory struct {
	byID map[string]*domain.Speaker
}

func newFakeSpeakerDirectory(speakers ...*domain.Speaker) *fakeSpeakerDirectory {
	f := &fakeSpeakerDirectory{byID: make(map[string]*domain.Speaker)}
	for _, s := range speakers {
		f.byID[s.ID] = s
	}
	return f
}

func (f *fakeSpeakerDirectory) GetSpeaker(ctx context.Context, id string) (*domain.Speaker, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

type sentMail struct {
	to      string
	subject string
	html    string
	text    string
}

// fakeMailer records sent messages instead of delivering them.
type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html, text: text})
	return nil
}

// fakeRenderer renders a fixed subject and bodies derived from the data.
type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	d, ok := data.(*domain.ScheduleUpdateEmailData)
	if !ok {
		return "", "", "", fmt.Errorf("unexpected data type %T", data)
	}
	subject := fmt.Sprintf("Schedule update for %s", d.EventName)
	body := fmt.Sprintf("Hi %s, %d of your sessions changed", d.SpeakerName, len(d.Facts))
	return subject, "<p>" + body + "</p>", body, nil
}

// ts returns a fixed test day at the given wall-clock time.
func ts(h, m int) time.Time {
	return time.Date(2025, 6, 1, h, m, 0, 0, time.UTC)
}

func confirmedSession(id, eventID, title string, speakers ...string) *domain.Session {
	return &domain.Session{
		ID:              id,
		EventID:         eventID,
		Title:           title,
		Speakers:        speakers,
		ItemState:       domain.StateConfirmed,
		DurationMinutes: 30,
	}
}
