package documentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"signdesk/internal/models"
	"signdesk/internal/pdf"
	documentrepo "signdesk/internal/repositories/db/document"
	"signdesk/internal/token"
	"signdesk/internal/validator"

	uuid "github.com/satori/go.uuid"
)

const pkg = "documentService/"

const pdfMime = "application/pdf"

type Config struct {
	DocumentsBucket string
	SignedBucket    string
	URLTTL          time.Duration
	AppURL          string
	TokenTTLDays    int
	EmailTimeout    time.Duration
}

type DocumentService struct {
	log        *slog.Logger
	docRepo    DocumentRepository
	eventRepo  EventRepository
	clientRepo ClientRepository
	storage    ObjectStorage
	engine     PDFEngine
	email      EmailSender
	cache      Cache
	cfg        Config
}

func New(
	log *slog.Logger,
	docRepo DocumentRepository,
	eventRepo EventRepository,
	clientRepo ClientRepository,
	storage ObjectStorage,
	engine PDFEngine,
	email EmailSender,
	cache Cache,
	cfg Config,
) *DocumentService {
	if cfg.EmailTimeout <= 0 {
		cfg.EmailTimeout = 15 * time.Second
	}

	return &DocumentService{
		log:        log,
		docRepo:    docRepo,
		eventRepo:  eventRepo,
		clientRepo: clientRepo,
		storage:    storage,
		engine:     engine,
		email:      email,
		cache:      cache,
		cfg:        cfg,
	}
}

func (ds *DocumentService) UploadDocument(ctx context.Context, requester *models.User, doc *models.Document, content []byte) (*models.Document, error) {
	op := pkg + "UploadDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to upload document", slog.String("name", doc.Name), slog.String("client_id", doc.ClientID))

	if !requester.IsAdmin() {
		log.Warn("non-admin upload rejected", slog.String("user_id", requester.ID))
		return nil, models.ErrForbidden
	}

	if doc.Name == "" || doc.Mime != pdfMime || len(content) == 0 {
		log.Warn("invalid upload parameters", slog.String("mime", doc.Mime))
		return nil, models.ErrInvalidParams
	}

	if _, err := ds.clientRepo.ClientByID(ctx, doc.ClientID); err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			log.Warn("client not found", slog.String("client_id", doc.ClientID))
			return nil, models.ErrClientNotFound
		}
		log.Error("failed to get client", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	doc.ID = uuid.NewV4().String()
	doc.Status = models.StatusDraft
	doc.UploadedBy = requester.ID
	doc.FileSize = int64(len(content))
	doc.CreatedAt = time.Now().UTC()
	doc.FilePath = objectKey(doc.ClientID, doc.ID, doc.Name)

	err := ds.docRepo.CreateDocument(ctx, doc)
	if err != nil {
		log.Error("failed to save document metadata", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	err = ds.storage.Upload(ctx, ds.cfg.DocumentsBucket, doc.FilePath, content, doc.Mime)
	if err != nil {
		log.Error("failed to upload document content", slog.String("error", err.Error()))
		_ = ds.docRepo.Delete(ctx, doc.ID)

		return nil, models.ErrUpstream
	}

	ds.appendEvent(ctx, log, doc.ID, models.EventUploaded, &requester.Email, nil)

	log.Debug("document uploaded successfully", slog.String("doc_id", doc.ID))

	return doc, nil
}

// ShareDocument mints (or reuses) the share credential for a document and
// fires the notification email. A resend keeps the current token unless
// rotate is set or the token already expired.
func (ds *DocumentService) ShareDocument(ctx context.Context, requester *models.User, docID string, recipientEmail string, rotate bool) (*models.ShareLink, error) {
	op := pkg + "ShareDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to share document", slog.String("doc_id", docID))

	if !requester.IsAdmin() {
		log.Warn("non-admin share rejected", slog.String("user_id", requester.ID))
		return nil, models.ErrForbidden
	}

	if !validator.IsValidEmail(recipientEmail) {
		log.Warn("invalid recipient email")
		return nil, models.ErrInvalidParams
	}

	doc, err := ds.docRepo.DocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.String("doc_id", docID))
			return nil, models.ErrDocumentNotFound
		}
		log.Error("failed to get document", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	shareToken := ""
	expiresAt := time.Time{}

	reuse := doc.ShareToken != nil && !token.IsExpired(doc.ShareTokenExpiresAt) && !rotate
	if reuse {
		shareToken = *doc.ShareToken
		expiresAt = *doc.ShareTokenExpiresAt
	} else {
		shareToken, err = token.Generate()
		if err != nil {
			log.Error("failed to generate share token", slog.String("error", err.Error()))
			return nil, models.ErrInternal
		}

		expiresAt = token.Expiry(ds.cfg.TokenTTLDays)
	}

	sharedAt := time.Now().UTC()

	err = ds.docRepo.SetShared(ctx, doc.ID, shareToken, expiresAt, strings.ToLower(recipientEmail), sharedAt)
	if err != nil {
		log.Error("failed to store share credential", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	if doc.ShareToken != nil && *doc.ShareToken != shareToken {
		if err := ds.cache.Del(ctx, *doc.ShareToken); err != nil {
			log.Warn("failed to invalidate stale token cache", slog.String("error", err.Error()))
		}
	}

	eventType := models.EventShared
	if doc.SharedAt != nil {
		eventType = models.EventResent
	}

	payload, _ := json.Marshal(map[string]string{"recipient": strings.ToLower(recipientEmail)})
	ds.appendEvent(ctx, log, doc.ID, eventType, &requester.Email, payload)

	shareURL := fmt.Sprintf("%s/share?token=%s", strings.TrimRight(ds.cfg.AppURL, "/"), shareToken)

	if ds.email.Enabled() {
		// Detached context: a closed request must not abort the notification.
		go func() {
			emailCtx, cancel := context.WithTimeout(context.Background(), ds.cfg.EmailTimeout)
			defer cancel()

			if err := ds.email.SendSigningRequest(emailCtx, recipientEmail, doc.Name, shareURL); err != nil {
				log.Error("failed to send signing email",
					slog.String("doc_id", doc.ID),
					slog.String("error", err.Error()))
			}
		}()
	} else {
		log.Warn("smtp not configured, signing email skipped", slog.String("doc_id", doc.ID))
	}

	log.Debug("document shared successfully", slog.String("doc_id", doc.ID))

	return &models.ShareLink{
		Token:     shareToken,
		URL:       shareURL,
		ExpiresAt: expiresAt,
	}, nil
}

// DocumentByToken resolves a share link for the recipient. The first resolve
// of a sent document performs the viewed transition; concurrent resolves race
// on a conditional update and only the winner records the event.
func (ds *DocumentService) DocumentByToken(ctx context.Context, tok string) (*models.DocumentView, error) {
	op := pkg + "DocumentByToken"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to resolve share token")

	if cached, err := ds.cache.Get(ctx, tok); err == nil && cached != "" {
		var view models.DocumentView
		if err := json.Unmarshal([]byte(cached), &view); err == nil {
			log.Debug("share view served from cache")
			return &view, nil
		}
	}

	doc, err := ds.docRepo.DocumentByToken(ctx, tok)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("unknown share token")
			return nil, models.ErrDocumentNotFound
		}
		log.Error("failed to get document by token", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	// Signed documents stay reachable past expiry so a signer reloading
	// after success still sees confirmation.
	if doc.Status != models.StatusSigned && token.IsExpired(doc.ShareTokenExpiresAt) {
		log.Warn("expired share token", slog.String("doc_id", doc.ID))
		return nil, models.ErrLinkExpired
	}

	if doc.Status == models.StatusSent {
		now := time.Now().UTC()

		won, err := ds.docRepo.MarkViewed(ctx, doc.ID, now)
		if err != nil {
			log.Error("failed to mark document viewed", slog.String("error", err.Error()))
			return nil, models.ErrInternal
		}

		doc.Status = models.StatusViewed
		doc.ViewedAt = &now

		if won {
			ds.appendEvent(ctx, log, doc.ID, models.EventViewed, doc.SignerEmail, nil)
		}
	}

	view, err := ds.buildView(ctx, log, doc)
	if err != nil {
		return nil, err
	}

	if doc.Status == models.StatusSigned {
		if viewJSON, err := json.Marshal(view); err == nil {
			if err := ds.cache.Set(ctx, tok, string(viewJSON)); err != nil {
				log.Warn("failed to cache signed view", slog.String("error", err.Error()))
			}
		}
	}

	log.Debug("share token resolved successfully", slog.String("doc_id", doc.ID))

	return view, nil
}

// SignDocument embeds the drawn signature and claims the one allowed signing.
// The row claim happens before the artifact upload: the loser of a race gets
// a conflict and never writes a second artifact, and an upload retry after a
// transient failure hits the same deterministic key.
func (ds *DocumentService) SignDocument(ctx context.Context, req *models.SignRequest) (*models.DocumentView, error) {
	op := pkg + "SignDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to sign document")

	if !validator.IsValidName(req.SignerName) || !validator.IsValidEmail(req.SignerEmail) || len(req.Signature) == 0 {
		log.Warn("invalid signer parameters")
		return nil, models.ErrInvalidParams
	}

	doc, err := ds.docRepo.DocumentByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("unknown share token")
			return nil, models.ErrDocumentNotFound
		}
		log.Error("failed to get document by token", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	if doc.Status == models.StatusSigned {
		log.Warn("document already signed", slog.String("doc_id", doc.ID))
		return nil, models.ErrAlreadySigned
	}

	if token.IsExpired(doc.ShareTokenExpiresAt) {
		log.Warn("expired share token", slog.String("doc_id", doc.ID))
		return nil, models.ErrLinkExpired
	}

	original, err := ds.storage.Download(ctx, ds.cfg.DocumentsBucket, doc.FilePath)
	if err != nil {
		log.Error("failed to download original", slog.String("doc_id", doc.ID), slog.String("error", err.Error()))
		return nil, models.ErrUpstream
	}

	pageW, pageH, err := ds.engine.PageSize(original, req.Click.Page)
	if err != nil {
		if errors.Is(err, models.ErrInvalidPage) || errors.Is(err, models.ErrCorruptDocument) {
			log.Warn("failed to read page geometry", slog.String("doc_id", doc.ID), slog.String("error", err.Error()))
			return nil, err
		}
		log.Error("failed to read page geometry", slog.String("doc_id", doc.ID), slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	pos := pdf.ToDocumentSpace(req.Click, pageW, pageH)

	signedAt := time.Now().UTC()

	signedBytes, err := ds.engine.EmbedSignature(original, req.Signature, pos, pdf.SignerMeta{
		Name:     req.SignerName,
		Email:    req.SignerEmail,
		SignedAt: signedAt,
	})
	if err != nil {
		if errors.Is(err, models.ErrCorruptDocument) || errors.Is(err, models.ErrInvalidPage) || errors.Is(err, models.ErrBadSignatureImage) {
			log.Warn("failed to embed signature", slog.String("doc_id", doc.ID), slog.String("error", err.Error()))
			return nil, err
		}
		log.Error("failed to embed signature", slog.String("doc_id", doc.ID), slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	signedKey := objectKey(doc.ClientID, doc.ID, "signed_"+doc.Name)

	won, err := ds.docRepo.MarkSigned(ctx, doc.ID, documentrepo.MarkSignedParams{
		SignedFilePath: signedKey,
		SignerName:     req.SignerName,
		SignerEmail:    strings.ToLower(req.SignerEmail),
		SignedAt:       signedAt,
	})
	if err != nil {
		log.Error("failed to claim signing", slog.String("doc_id", doc.ID), slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	if !won {
		log.Warn("lost signing race", slog.String("doc_id", doc.ID))
		return nil, models.ErrAlreadySigned
	}

	// The claim is durable. The signer closing the tab must not abandon the
	// artifact or the audit record mid-write.
	ctx = context.WithoutCancel(ctx)

	err = ds.storage.Upload(ctx, ds.cfg.SignedBucket, signedKey, signedBytes, pdfMime)
	if err != nil {
		// The claim is committed; the artifact is missing until a retry
		// writes this exact key.
		log.Error("signed artifact upload failed, needs reconciliation",
			slog.String("doc_id", doc.ID),
			slog.String("storage_key", signedKey),
			slog.String("error", err.Error()))

		return nil, models.ErrUpstream
	}

	signerEmail := strings.ToLower(req.SignerEmail)

	payload, _ := json.Marshal(map[string]any{
		"x":    req.Click.X,
		"y":    req.Click.Y,
		"page": req.Click.Page,
	})
	ds.appendEvent(ctx, log, doc.ID, models.EventSigned, &signerEmail, payload)

	doc.Status = models.StatusSigned
	doc.SignedFilePath = &signedKey
	doc.SignerName = &req.SignerName
	doc.SignerEmail = &signerEmail
	doc.SignedAt = &signedAt

	view, err := ds.buildView(ctx, log, doc)
	if err != nil {
		return nil, err
	}

	log.Debug("document signed successfully", slog.String("doc_id", doc.ID))

	return view, nil
}

func (ds *DocumentService) DownloadDocument(ctx context.Context, requester *models.User, docID string, signed bool) (*models.Document, []byte, error) {
	op := pkg + "DownloadDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to download document", slog.String("doc_id", docID), slog.Bool("signed", signed))

	if !requester.IsAdmin() {
		log.Warn("non-admin download rejected", slog.String("user_id", requester.ID))
		return nil, nil, models.ErrForbidden
	}

	doc, err := ds.docRepo.DocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.String("doc_id", docID))
			return nil, nil, models.ErrDocumentNotFound
		}
		log.Error("failed to get document", slog.String("error", err.Error()))
		return nil, nil, models.ErrInternal
	}

	bucket := ds.cfg.DocumentsBucket
	key := doc.FilePath

	if signed {
		if doc.SignedFilePath == nil {
			log.Warn("signed artifact not present", slog.String("doc_id", docID))
			return nil, nil, models.ErrDocumentNotFound
		}

		bucket = ds.cfg.SignedBucket
		key = *doc.SignedFilePath
	}

	content, err := ds.storage.Download(ctx, bucket, key)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("object missing in storage", slog.String("doc_id", docID), slog.String("storage_key", key))
			return nil, nil, models.ErrDocumentNotFound
		}
		log.Error("failed to download object", slog.String("error", err.Error()))
		return nil, nil, models.ErrUpstream
	}

	payload, _ := json.Marshal(map[string]bool{"signed": signed})
	ds.appendEvent(ctx, log, doc.ID, models.EventDownloaded, &requester.Email, payload)

	log.Debug("document downloaded successfully", slog.String("doc_id", docID))

	return doc, content, nil
}

func (ds *DocumentService) DeleteDocument(ctx context.Context, requester *models.User, docID string) error {
	op := pkg + "DeleteDocument"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to delete document", slog.String("doc_id", docID))

	if !requester.IsAdmin() {
		log.Warn("non-admin delete rejected", slog.String("user_id", requester.ID))
		return models.ErrForbidden
	}

	doc, err := ds.docRepo.DocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.String("doc_id", docID))
			return models.ErrDocumentNotFound
		}
		log.Error("failed to get document", slog.String("error", err.Error()))
		return models.ErrInternal
	}

	if err := ds.storage.Delete(ctx, ds.cfg.DocumentsBucket, doc.FilePath); err != nil {
		log.Error("failed to delete original object", slog.String("error", err.Error()))
		return models.ErrUpstream
	}

	if doc.SignedFilePath != nil {
		if err := ds.storage.Delete(ctx, ds.cfg.SignedBucket, *doc.SignedFilePath); err != nil {
			log.Error("failed to delete signed object", slog.String("error", err.Error()))
			return models.ErrUpstream
		}
	}

	// Events cascade with the row.
	if err := ds.docRepo.Delete(ctx, docID); err != nil {
		log.Error("failed to delete document meta", slog.String("error", err.Error()))
		return models.ErrInternal
	}

	if doc.ShareToken != nil {
		if err := ds.cache.Del(ctx, *doc.ShareToken); err != nil {
			log.Warn("failed to invalidate token cache", slog.String("error", err.Error()))
		}
	}

	log.Debug("document deleted successfully", slog.String("doc_id", docID))

	return nil
}

func (ds *DocumentService) DocumentByID(ctx context.Context, requester *models.User, docID string) (*models.Document, error) {
	op := pkg + "DocumentByID"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to get document by id", slog.String("doc_id", docID))

	if !requester.IsAdmin() {
		return nil, models.ErrForbidden
	}

	doc, err := ds.docRepo.DocumentByID(ctx, docID)
	if err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.String("doc_id", docID))
			return nil, models.ErrDocumentNotFound
		}
		log.Error("failed to get document", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	return doc, nil
}

func (ds *DocumentService) ListDocuments(ctx context.Context, requester *models.User, clientID string) ([]*models.Document, error) {
	op := pkg + "ListDocuments"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to list documents", slog.String("client_id", clientID))

	if !requester.IsAdmin() {
		return nil, models.ErrForbidden
	}

	docs, err := ds.docRepo.ListByClient(ctx, clientID)
	if err != nil {
		log.Error("failed to list documents", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	log.Debug("documents listed successfully", slog.Int("count", len(docs)))

	return docs, nil
}

func (ds *DocumentService) DocumentEvents(ctx context.Context, requester *models.User, docID string, limit int) ([]*models.DocumentEvent, error) {
	op := pkg + "DocumentEvents"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to list document events", slog.String("doc_id", docID))

	if !requester.IsAdmin() {
		return nil, models.ErrForbidden
	}

	if _, err := ds.docRepo.DocumentByID(ctx, docID); err != nil {
		if errors.Is(err, models.ErrDocumentNotFound) {
			log.Warn("document not found", slog.String("doc_id", docID))
			return nil, models.ErrDocumentNotFound
		}
		log.Error("failed to get document", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	events, err := ds.eventRepo.ListByDocument(ctx, docID, limit)
	if err != nil {
		log.Error("failed to list events", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	return events, nil
}

func (ds *DocumentService) CreateClient(ctx context.Context, requester *models.User, client *models.Client) (*models.Client, error) {
	op := pkg + "CreateClient"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to create client")

	if !requester.IsAdmin() {
		return nil, models.ErrForbidden
	}

	if !validator.IsValidName(client.Name) || !validator.IsValidEmail(client.Email) {
		log.Warn("invalid client parameters")
		return nil, models.ErrInvalidParams
	}

	client.ID = uuid.NewV4().String()
	client.Email = strings.ToLower(client.Email)
	client.CreatedAt = time.Now().UTC()

	if err := ds.clientRepo.CreateClient(ctx, client); err != nil {
		log.Error("failed to create client", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	log.Debug("client created successfully", slog.String("client_id", client.ID))

	return client, nil
}

func (ds *DocumentService) ListClients(ctx context.Context, requester *models.User) ([]*models.Client, error) {
	op := pkg + "ListClients"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to list clients")

	if !requester.IsAdmin() {
		return nil, models.ErrForbidden
	}

	clients, err := ds.clientRepo.ListClients(ctx)
	if err != nil {
		log.Error("failed to list clients", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	return clients, nil
}

func (ds *DocumentService) ClientByID(ctx context.Context, requester *models.User, clientID string) (*models.Client, error) {
	op := pkg + "ClientByID"

	log := ds.log.With(slog.String("op", op))

	log.Debug("attempting to get client", slog.String("client_id", clientID))

	if !requester.IsAdmin() {
		return nil, models.ErrForbidden
	}

	client, err := ds.clientRepo.ClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, models.ErrClientNotFound) {
			log.Warn("client not found", slog.String("client_id", clientID))
			return nil, models.ErrClientNotFound
		}
		log.Error("failed to get client", slog.String("error", err.Error()))
		return nil, models.ErrInternal
	}

	return client, nil
}

// appendEvent is best-effort: the audit trail never fails the operation that
// produced it.
func (ds *DocumentService) appendEvent(ctx context.Context, log *slog.Logger, docID string, eventType models.EventType, actorEmail *string, payload []byte) {
	event := &models.DocumentEvent{
		ID:         uuid.NewV4().String(),
		DocumentID: docID,
		EventType:  eventType,
		ActorEmail: actorEmail,
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}

	if err := ds.eventRepo.Append(ctx, event); err != nil {
		log.Error("failed to append event",
			slog.String("doc_id", docID),
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()))
	}
}

func (ds *DocumentService) buildView(ctx context.Context, log *slog.Logger, doc *models.Document) (*models.DocumentView, error) {
	view := &models.DocumentView{
		ID:          doc.ID,
		Name:        doc.Name,
		Status:      doc.Status,
		SignerName:  doc.SignerName,
		SignerEmail: doc.SignerEmail,
		SignedAt:    doc.SignedAt,
	}

	fileURL, err := ds.storage.SignedURL(ctx, ds.cfg.DocumentsBucket, doc.FilePath, ds.cfg.URLTTL)
	if err != nil {
		log.Error("failed to presign original", slog.String("doc_id", doc.ID), slog.String("error", err.Error()))
		return nil, models.ErrUpstream
	}

	view.FileURL = fileURL

	if doc.SignedFilePath != nil {
		signedURL, err := ds.storage.SignedURL(ctx, ds.cfg.SignedBucket, *doc.SignedFilePath, ds.cfg.URLTTL)
		if err != nil {
			log.Error("failed to presign signed artifact", slog.String("doc_id", doc.ID), slog.String("error", err.Error()))
			return nil, models.ErrUpstream
		}

		view.SignedFileURL = signedURL
	}

	return view, nil
}

func objectKey(clientID, docID, name string) string {
	return fmt.Sprintf("%s/%s/%s", clientID, docID, name)
}
