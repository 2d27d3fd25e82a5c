package service

import (
	"context"
	"fmt"
	"io"

	"github.com/bwmarrin/snowflake"
	"github.com/strongslime/atelier/internal/catalog"
	catalogdomain "github.com/strongslime/atelier/internal/catalog/domain"
	"github.com/strongslime/atelier/internal/clock"
	"github.com/strongslime/atelier/internal/export"
	"github.com/strongslime/atelier/internal/pricing"
	"github.com/strongslime/atelier/internal/providers/pdf"
	sessiondomain "github.com/strongslime/atelier/internal/session/domain"
	"github.com/strongslime/atelier/internal/wizard"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const snapshotKeyPrefix = "comm_v2:"

type Params struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    sessiondomain.Repository
	Catalog *catalog.Holder
	PDF     pdf.Provider
}

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    sessiondomain.Repository
	catalog *catalog.Holder
	pdf     pdf.Provider
	blobs   *blobStore
}

func New(p Params) sessiondomain.Service {
	return &Service{
		log:     p.Log.Named("session.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		catalog: p.Catalog,
		pdf:     p.PDF,
		blobs:   newBlobStore(),
	}
}

func (s *Service) Create(ctx context.Context) (*sessiondomain.Response, error) {
	cat := s.catalog.Get()
	id := s.genID.Generate().String()
	st := sessiondomain.NewState(cat)

	s.persist(ctx, id, st)
	return s.respond(cat, id, st), nil
}

func (s *Service) Get(ctx context.Context, id string) (*sessiondomain.Response, error) {
	cat := s.catalog.Get()
	st, err := s.load(ctx, cat, id)
	if err != nil {
		return nil, err
	}
	return s.respond(cat, id, st), nil
}

// Dispatch applies one action: reduce, persist, recompute. Transient
// handles of files dropped by the reduction are released here.
func (s *Service) Dispatch(ctx context.Context, id string, action sessiondomain.Action) (*sessiondomain.Response, error) {
	cat := s.catalog.Get()
	st, err := s.load(ctx, cat, id)
	if err != nil {
		return nil, err
	}

	next, err := wizard.Apply(cat, st, action)
	if err != nil {
		return nil, err
	}

	s.releaseDropped(st, next)
	s.persist(ctx, id, next)
	return s.respond(cat, id, next), nil
}

func (s *Service) AttachFiles(ctx context.Context, id string, uploads []sessiondomain.FileUpload) (*sessiondomain.Response, error) {
	cat := s.catalog.Get()
	st, err := s.load(ctx, cat, id)
	if err != nil {
		return nil, err
	}

	refs := make([]sessiondomain.FileRef, 0, len(uploads))
	seen := make(map[string]struct{}, len(uploads))
	for _, up := range uploads {
		ref := sessiondomain.FileRef{
			Name:         up.Name,
			Size:         up.Size,
			LastModified: up.LastModified,
		}
		key := ref.Key()
		// Dedupe against both the session and the batch itself; a second
		// put for the same key would orphan the first handle.
		if st.HasFile(ref) {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ref.HandleID = s.blobs.put(id, key, up.ContentType, up.Content)
		refs = append(refs, ref)
	}

	next := wizard.AddFiles(st, refs)
	s.persist(ctx, id, next)
	return s.respond(cat, id, next), nil
}

func (s *Service) RemoveFile(ctx context.Context, id, handleID string) (*sessiondomain.Response, error) {
	cat := s.catalog.Get()
	st, err := s.load(ctx, cat, id)
	if err != nil {
		return nil, err
	}

	found := false
	files := make([]sessiondomain.FileRef, 0, len(st.Files))
	for _, f := range st.Files {
		if f.HandleID == handleID {
			found = true
			continue
		}
		files = append(files, f)
	}
	if !found {
		return nil, sessiondomain.ErrFileNotFound
	}

	s.blobs.release(handleID)
	st.Files = files
	s.persist(ctx, id, st)
	return s.respond(cat, id, st), nil
}

func (s *Service) Summary(ctx context.Context, id string) (string, error) {
	cat := s.catalog.Get()
	st, err := s.load(ctx, cat, id)
	if err != nil {
		return "", err
	}
	bd := pricing.Compute(cat, wizard.ToSelection(st))
	return export.Summary(cat, st, bd), nil
}

// ExportPDF produces the commission summary document. The terms of
// service gate is the one hard block: without acceptance this is a
// refusal, not a failure, and the session is untouched either way.
func (s *Service) ExportPDF(ctx context.Context, id string) (io.Reader, error) {
	cat := s.catalog.Get()
	st, err := s.load(ctx, cat, id)
	if err != nil {
		return nil, err
	}
	if !wizard.ExportAllowed(st) {
		return nil, sessiondomain.ErrTOSNotAccepted
	}

	data := s.buildOrder(cat, st)
	reader, err := s.pdf.GenerateOrderSummary(ctx, data)
	if err != nil {
		s.log.Error("order export failed", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", sessiondomain.ErrExportFailed, err)
	}
	return reader, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.blobs.releaseSession(id)
	return s.repo.Delete(ctx, snapshotKeyPrefix+id)
}

// load restores a session from its snapshot. Field-level corruption
// falls back to defaults individually; live transient handles are
// reattached by file key.
func (s *Service) load(ctx context.Context, cat catalogdomain.Catalog, id string) (sessiondomain.SelectionState, error) {
	snap, err := s.repo.Find(ctx, snapshotKeyPrefix+id)
	if err != nil {
		return sessiondomain.SelectionState{}, err
	}

	st := sessiondomain.DecodeSnapshot(snap.Payload, sessiondomain.NewState(cat))
	for i, f := range st.Files {
		if handle, ok := s.blobs.handleFor(id, f.Key()); ok {
			st.Files[i].HandleID = handle
		}
	}
	return st, nil
}

// persist writes the snapshot. Failures are logged and swallowed: the
// in-memory state stays authoritative for the caller and the session
// must not become read-only because storage is unhappy.
func (s *Service) persist(ctx context.Context, id string, st sessiondomain.SelectionState) {
	payload, err := sessiondomain.EncodeSnapshot(st)
	if err != nil {
		s.log.Warn("snapshot encode failed", zap.String("session_id", id), zap.Error(err))
		return
	}
	snap := &sessiondomain.SessionSnapshot{
		Key:       snapshotKeyPrefix + id,
		Payload:   datatypes.JSON(payload),
		UpdatedAt: s.clock.Now(),
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		s.log.Warn("snapshot persist failed", zap.String("session_id", id), zap.Error(err))
	}
}

func (s *Service) respond(cat catalogdomain.Catalog, id string, st sessiondomain.SelectionState) *sessiondomain.Response {
	bd := pricing.Compute(cat, wizard.ToSelection(st))
	return &sessiondomain.Response{
		ID:            id,
		State:         st,
		Breakdown:     bd,
		Display:       pricing.FormatBreakdown(bd, st.Currency, cat.Currency(st.Currency)),
		ExportAllowed: wizard.ExportAllowed(st),
	}
}

func (s *Service) releaseDropped(before, after sessiondomain.SelectionState) {
	kept := make(map[string]struct{}, len(after.Files))
	for _, f := range after.Files {
		kept[f.Key()] = struct{}{}
	}
	for _, f := range before.Files {
		if _, ok := kept[f.Key()]; ok {
			continue
		}
		if f.HandleID != "" {
			s.blobs.release(f.HandleID)
		}
	}
}

func (s *Service) buildOrder(cat catalogdomain.Catalog, st sessiondomain.SelectionState) pdf.OrderData {
	cur := cat.Currency(st.Currency)
	bd := pricing.Compute(cat, wizard.ToSelection(st))

	ctype, _ := cat.FindType(st.TypeID)
	sub, _ := ctype.FindSubType(st.SubTypeID)

	var tierName string
	var tierPrice float64
	if len(sub.Tiers) > 0 {
		tier := sub.Tiers[0]
		if st.TierIndex >= 0 && st.TierIndex < len(sub.Tiers) {
			tier = sub.Tiers[st.TierIndex]
		}
		tierName = tier.Name
		tierPrice = tier.Price
	}

	styleName := st.StyleID
	if style, ok := cat.ArtStyles[st.StyleID]; ok {
		styleName = style.Label
		if style.Kind == catalogdomain.StyleKindPercent {
			styleName = fmt.Sprintf("%s (+%s)", style.Label, pricing.Format(tierPrice*style.Value/100, cur))
		}
	}

	addons := make([]pdf.OrderAddon, 0, len(st.Addons))
	for _, entry := range st.Addons {
		addon, ok := ctype.FindAddon(entry.ID)
		if !ok {
			continue
		}
		var amount float64
		switch addon.Kind {
		case catalogdomain.AddonKindPercent:
			amount = tierPrice * addon.Value / 100
		default:
			qty := entry.Quantity
			if qty < 1 {
				qty = 1
			}
			amount = addon.Value
			if addon.ID == catalogdomain.AddonItemProp {
				amount = addon.Value * float64(qty)
			}
		}
		addons = append(addons, pdf.OrderAddon{
			Label:    addon.Label,
			Quantity: entry.Quantity,
			Price:    "+" + pricing.Format(amount, cur),
		})
	}

	files := make([]pdf.OrderFile, 0, len(st.Files))
	for _, f := range st.Files {
		of := pdf.OrderFile{Name: f.Name}
		if b, ok := s.blobs.get(f.HandleID); ok {
			of.ContentType = b.contentType
			of.Content = b.content
		}
		files = append(files, of)
	}

	currencyName := st.Currency
	if cur.Name != "" {
		currencyName = cur.Name
	}

	title := "Commission Summary"
	if label, ok := cat.Labels["siteTitle"]; ok && label != "" {
		title = label
	}

	return pdf.OrderData{
		Title:       title,
		ClientName:  st.Username,
		Description: st.Description,
		TypeName:    ctype.Name,
		SubTypeName: sub.Name,
		TierName:    tierName,
		TierPrice:   pricing.Format(tierPrice, cur),
		StyleName:   styleName,
		Currency:    currencyName,
		Addons:      addons,
		Files:       files,
		Base:        pricing.Format(bd.Base, cur),
		StyleAdd:    pricing.Format(bd.StyleAdd, cur),
		AddonsSum:   pricing.Format(bd.AddonsSum, cur),
		RefDiscount: "-" + pricing.Format(bd.RefDiscount, cur),
		Total:       pricing.Format(bd.Total, cur),
		GeneratedAt: s.clock.Now().Format("2006-01-02 15:04 MST"),
	}
}
