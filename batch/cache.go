package batch

// Partition splits caller-held jobs into those whose state can be trusted
// and those that must be fetched again.
type Partition struct {
	// Terminal holds cached jobs in a terminal state, by id.
	Terminal map[string]Job
	// ToRefresh lists ids of cached jobs that are still in flight.
	ToRefresh []string
}

// PartitionCache partitions cached jobs. forceRefresh empties the cache so
// every job is taken from the platform.
func PartitionCache(cached []Job, forceRefresh bool) Partition {
	p := Partition{Terminal: make(map[string]Job)}
	if forceRefresh {
		return p
	}
	for _, job := range cached {
		if job.ID == "" {
			continue
		}
		if job.Status.IsTerminal() {
			p.Terminal[job.ID] = job
		} else {
			p.ToRefresh = append(p.ToRefresh, job.ID)
		}
	}
	return p
}

// Lookup returns the cached terminal job for id. A hit with an empty file
// list still needs a files-only refresh.
func (p Partition) Lookup(id string) (job Job, hit, needsFiles bool) {
	job, hit = p.Terminal[id]
	return job, hit, hit && len(job.Files) == 0
}
