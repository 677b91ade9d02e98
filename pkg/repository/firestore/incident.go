package firestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/interfaces"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// IncidentsCollection holds one document per incident row
	IncidentsCollection = "incidents"
	// DatasetMetadataCollection holds the refresh status document
	DatasetMetadataCollection = "dataset_metadata"

	refreshStatusDocument = "refresh_status"
)

type incidentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.IncidentRepository = &incidentRepository{}

func newIncidentRepository(client *firestore.Client) *incidentRepository {
	return &incidentRepository{
		client: client,
	}
}

// incidentDoc is the Firestore persistence model. Seq keeps the source row order
// because incident IDs are not guaranteed to be unique in the dataset.
type incidentDoc struct {
	Seq             int64     `firestore:"seq"`
	IncidentID      string    `firestore:"incident_id"`
	Date            time.Time `firestore:"date"`
	Region          string    `firestore:"region"`
	Channel         string    `firestore:"channel"`
	Severity        string    `firestore:"severity_level"`
	Category        string    `firestore:"category"`
	Subsystem       string    `firestore:"subsystem"`
	RootCause       string    `firestore:"root_cause"`
	SLABreached     bool      `firestore:"sla_breached"`
	ResolutionHours float64   `firestore:"time_to_resolve_hours"`
	FinancialImpact float64   `firestore:"financial_impact_usd"`
	Repeated        bool      `firestore:"is_repeated_incident"`
}

// datasetMetadataDoc is the Firestore persistence model for metadata
type datasetMetadataDoc struct {
	SnapshotID         string    `firestore:"snapshot_id"`
	Sources            []string  `firestore:"sources"`
	RecordCount        int       `firestore:"record_count"`
	SkippedRows        int       `firestore:"skipped_rows"`
	LastRefreshSuccess time.Time `firestore:"last_refresh_success"`
	LastRefreshAttempt time.Time `firestore:"last_refresh_attempt"`
}

func (r *incidentRepository) collection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + IncidentsCollection)
	}
	return r.client.Collection(IncidentsCollection)
}

func (r *incidentRepository) metadataCollection() *firestore.CollectionRef {
	if r.collectionPrefix != "" {
		return r.client.Collection(r.collectionPrefix + "_" + DatasetMetadataCollection)
	}
	return r.client.Collection(DatasetMetadataCollection)
}

func toIncidentDoc(seq int64, x *model.Incident) *incidentDoc {
	return &incidentDoc{
		Seq:             seq,
		IncidentID:      string(x.ID),
		Date:            x.Date,
		Region:          x.Region,
		Channel:         x.Channel,
		Severity:        x.Severity,
		Category:        x.Category,
		Subsystem:       x.Subsystem,
		RootCause:       x.RootCause,
		SLABreached:     x.SLABreached,
		ResolutionHours: x.ResolutionHours,
		FinancialImpact: x.FinancialImpact,
		Repeated:        x.Repeated,
	}
}

func (d *incidentDoc) toModel() *model.Incident {
	return &model.Incident{
		ID:              model.IncidentID(d.IncidentID),
		Date:            d.Date.UTC(),
		Region:          d.Region,
		Channel:         d.Channel,
		Severity:        d.Severity,
		Category:        d.Category,
		Subsystem:       d.Subsystem,
		RootCause:       d.RootCause,
		SLABreached:     d.SLABreached,
		ResolutionHours: d.ResolutionHours,
		FinancialImpact: d.FinancialImpact,
		Repeated:        d.Repeated,
	}
}

func seqDocID(seq int64) string {
	return fmt.Sprintf("%010d", seq)
}

func (r *incidentRepository) readAll(iter *firestore.DocumentIterator) ([]*incidentDoc, error) {
	defer iter.Stop()

	var docs []*incidentDoc
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate incidents")
		}

		var d incidentDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal incident", goerr.V("docID", doc.Ref.ID))
		}
		docs = append(docs, &d)
	}

	return docs, nil
}

func toModels(docs []*incidentDoc) []*model.Incident {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Seq < docs[j].Seq
	})

	result := make([]*model.Incident, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.toModel())
	}
	return result
}

// List retrieves all incidents in the order they were saved
func (r *incidentRepository) List(ctx context.Context) ([]*model.Incident, error) {
	docs, err := r.readAll(r.collection().OrderBy("seq", firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, err
	}
	return toModels(docs), nil
}

// ListBetween retrieves incidents whose calendar day is within [start, end].
// Requires the (date, seq) composite index created by the migrate command.
func (r *incidentRepository) ListBetween(ctx context.Context, start, end time.Time) ([]*model.Incident, error) {
	start = model.TruncateDay(start)
	end = model.TruncateDay(end)
	if start.After(end) {
		return []*model.Incident{}, nil
	}

	query := r.collection().
		Where("date", ">=", start).
		Where("date", "<", end.AddDate(0, 0, 1)).
		OrderBy("date", firestore.Asc).
		OrderBy("seq", firestore.Asc)

	docs, err := r.readAll(query.Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents between dates",
			goerr.V("start", start), goerr.V("end", end))
	}
	return toModels(docs), nil
}

func (r *incidentRepository) nextSeq(ctx context.Context) (int64, error) {
	iter := r.collection().OrderBy("seq", firestore.Desc).Limit(1).Documents(ctx)
	docs, err := r.readAll(iter)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	return docs[0].Seq + 1, nil
}

// SaveMany appends incidents after the stored ones
// Uses BulkWriter which handles Firestore batch write limits
func (r *incidentRepository) SaveMany(ctx context.Context, incidents []*model.Incident) error {
	if len(incidents) == 0 {
		return nil
	}

	seq, err := r.nextSeq(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to determine next incident sequence")
	}

	bulkWriter := r.client.BulkWriter(ctx)
	defer bulkWriter.End()

	jobs := make([]*firestore.BulkWriterJob, 0, len(incidents))
	for i, x := range incidents {
		docRef := r.collection().Doc(seqDocID(seq + int64(i)))
		job, err := bulkWriter.Set(docRef, toIncidentDoc(seq+int64(i), x))
		if err != nil {
			return goerr.Wrap(err, "failed to add Set operation to bulk writer", goerr.V("incident_id", x.ID))
		}
		jobs = append(jobs, job)
	}

	// Flush and wait for all operations to complete
	bulkWriter.Flush()

	for i, job := range jobs {
		if _, err := job.Results(); err != nil {
			return goerr.Wrap(err, "failed to write incident", goerr.V("incident_id", incidents[i].ID))
		}
	}

	return nil
}

// DeleteAll deletes all incidents from Firestore
func (r *incidentRepository) DeleteAll(ctx context.Context) error {
	iter := r.collection().Select().Documents(ctx)
	defer iter.Stop()

	var refs []*firestore.DocumentRef
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate incidents for deletion")
		}
		refs = append(refs, doc.Ref)
	}

	if len(refs) == 0 {
		return nil
	}

	bulkWriter := r.client.BulkWriter(ctx)
	defer bulkWriter.End()

	for _, ref := range refs {
		if _, err := bulkWriter.Delete(ref); err != nil {
			return goerr.Wrap(err, "failed to add Delete operation to bulk writer")
		}
	}

	bulkWriter.Flush()

	return nil
}

// GetMetadata retrieves refresh metadata
func (r *incidentRepository) GetMetadata(ctx context.Context) (*model.DatasetMetadata, error) {
	doc, err := r.metadataCollection().Doc(refreshStatusDocument).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			// Return zero value if metadata doesn't exist yet
			return &model.DatasetMetadata{}, nil
		}
		return nil, goerr.Wrap(err, "failed to get dataset metadata")
	}

	var d datasetMetadataDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal dataset metadata")
	}

	return &model.DatasetMetadata{
		SnapshotID:         d.SnapshotID,
		Sources:            d.Sources,
		RecordCount:        d.RecordCount,
		SkippedRows:        d.SkippedRows,
		LastRefreshSuccess: d.LastRefreshSuccess,
		LastRefreshAttempt: d.LastRefreshAttempt,
	}, nil
}

// SaveMetadata saves refresh metadata
func (r *incidentRepository) SaveMetadata(ctx context.Context, metadata *model.DatasetMetadata) error {
	d := &datasetMetadataDoc{
		SnapshotID:         metadata.SnapshotID,
		Sources:            metadata.Sources,
		RecordCount:        metadata.RecordCount,
		SkippedRows:        metadata.SkippedRows,
		LastRefreshSuccess: metadata.LastRefreshSuccess,
		LastRefreshAttempt: metadata.LastRefreshAttempt,
	}
	if _, err := r.metadataCollection().Doc(refreshStatusDocument).Set(ctx, d); err != nil {
		return goerr.Wrap(err, "failed to save dataset metadata")
	}
	return nil
}
