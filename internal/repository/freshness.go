package repository

import (
	"context"
	"time"

	"corpus-backend/internal/corpus"
	"corpus-backend/internal/metrics"

	"github.com/sirupsen/logrus"
)

const markerKey = "marker"

// snapshot returns the graph to answer a read from, reloading it first when
// the published marker is newer than the marker it was loaded under.
// Concurrent readers that see the same staleness share one reload.
func (r *GraphRepository) snapshot(ctx context.Context) (*snapshot, error) {
	cur := r.current.Load()

	published, err := r.publishedMarker(ctx)
	if err != nil {
		if cur != nil {
			r.logger.WithError(err).Warn("Failed to read update marker, serving loaded corpus")
			return cur, nil
		}
		return nil, corpus.Unavailable("corpus not loaded", err)
	}
	if cur != nil && published <= cur.marker {
		return cur, nil
	}

	v, err, _ := r.reloadGroup.Do(markerKey, func() (any, error) {
		// The reload outlives any single caller.
		ctx := context.WithoutCancel(ctx)

		r.mu.Lock()
		defer r.mu.Unlock()

		// A reload or a local write may have caught up while waiting.
		if latest := r.current.Load(); latest != nil && latest.marker >= published {
			return latest, nil
		}
		return r.reloadLocked(ctx)
	})
	if err != nil {
		if cur != nil {
			r.logger.WithError(err).Error("Reload failed, serving previous corpus")
			return cur, nil
		}
		return nil, corpus.Unavailable("corpus not loaded", err)
	}
	return v.(*snapshot), nil
}

// freshLocked is the write-path counterpart of snapshot. It always reads the
// marker from the source and must be called with mu held.
func (r *GraphRepository) freshLocked(ctx context.Context) (*snapshot, error) {
	cur := r.current.Load()

	published, err := r.source.Marker(ctx)
	if err != nil {
		return nil, corpus.Unavailable("failed to read update marker", err)
	}
	if cur != nil && published <= cur.marker {
		return cur, nil
	}

	next, err := r.reloadLocked(ctx)
	if err != nil {
		return nil, corpus.Unavailable("failed to reload corpus", err)
	}
	return next, nil
}

// publishedMarker returns the source marker, memoised for checkInterval.
func (r *GraphRepository) publishedMarker(ctx context.Context) (int64, error) {
	if r.checkInterval > 0 {
		if v, ok := r.markers.Get(markerKey); ok {
			return v.(int64), nil
		}
	}

	marker, err := r.source.Marker(ctx)
	if err != nil {
		return 0, err
	}
	if r.checkInterval > 0 {
		r.markers.SetDefault(markerKey, marker)
	}
	return marker, nil
}

// reloadLocked rebuilds the graph from the source and publishes it. It must be
// called with mu held.
func (r *GraphRepository) reloadLocked(ctx context.Context) (s *snapshot, err error) {
	start := time.Now()
	defer func() { metrics.RecordReload(time.Since(start), err) }()

	records, marker, err := r.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	graph, err := corpus.Build(records)
	if err != nil {
		return nil, err
	}

	s = &snapshot{graph: graph, marker: marker, loadedAt: time.Now().UTC()}
	r.publish(s)
	r.reloads.Add(1)

	counts := graph.Counts()
	r.logger.WithFields(logrus.Fields{
		"marker":        marker,
		"movies":        counts.Movies,
		"characters":    counts.Characters,
		"conversations": counts.Conversations,
		"lines":         counts.Lines,
		"duration":      time.Since(start).String(),
	}).Info("Corpus loaded")
	return s, nil
}
