package recommend

import (
	"advisor.fieldroute.org/internal/geo"
	"advisor.fieldroute.org/internal/models"
)

// Point labels used during clustering. Positive labels are cluster IDs.
const (
	labelUndefined = 0
	labelNoise     = -1
)

// dbscan partitions the given customers into density-based clusters using
// grid-accelerated DBSCAN. epsilonKm is the neighbor radius and minPts the
// minimum neighbor count (the point itself included) for a core point.
//
// Every customer ends up in exactly one cluster or in the noise slice.
// Clusters that come out of expansion with fewer than minPts members have
// no core point of their own and are reverted to noise. Iteration follows
// input order, so identical input produces identical output.
func dbscan(customers []models.CustomerLocation, epsilonKm float64, minPts int) (clusters [][]models.CustomerLocation, noise []models.CustomerLocation) {
	n := len(customers)
	if n == 0 {
		return nil, nil
	}

	points := make([]models.GeoPoint, n)
	for i, c := range customers {
		points[i] = c.Location
	}
	grid := geo.NewGrid(points, epsilonKm)

	labels := make([]int, n)
	visited := make([]bool, n)
	clusterID := 0

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := grid.NeighborsWithin(i, epsilonKm)
		if len(neighbors) < minPts {
			// Tentative: a later expansion may still absorb this point as a
			// border member of another cluster.
			labels[i] = labelNoise
			continue
		}

		clusterID++
		labels[i] = clusterID
		expandCluster(grid, labels, visited, neighbors, i, clusterID, epsilonKm, minPts)
	}

	return collectClusters(customers, labels, clusterID, minPts)
}

// expandCluster grows cluster clusterID outward from the core point at
// index origin, breadth-first. The queue is paired with a membership set so
// re-enqueue checks stay O(1).
func expandCluster(grid *geo.Grid, labels []int, visited []bool, seed []int, origin, clusterID int, epsilonKm float64, minPts int) {
	queue := make([]int, 0, len(seed))
	queued := make(map[int]bool, len(seed))
	for _, j := range seed {
		if j != origin && labels[j] <= labelUndefined {
			queue = append(queue, j)
			queued[j] = true
		}
	}

	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		delete(queued, q)

		if !visited[q] {
			visited[q] = true
			neighbors := grid.NeighborsWithin(q, epsilonKm)
			if len(neighbors) >= minPts {
				// q is itself a core point; its unassigned neighbors are
				// reachable and join the frontier.
				for _, j := range neighbors {
					if j != q && labels[j] <= labelUndefined && !queued[j] {
						queue = append(queue, j)
						queued[j] = true
					}
				}
			}
		}

		if labels[q] <= labelUndefined {
			labels[q] = clusterID
		}
	}
}

// collectClusters groups the labeled customers by cluster ID, dropping
// clusters below minPts back into the noise set.
func collectClusters(customers []models.CustomerLocation, labels []int, clusterID, minPts int) ([][]models.CustomerLocation, []models.CustomerLocation) {
	byID := make([][]models.CustomerLocation, clusterID+1)
	for i, c := range customers {
		if labels[i] > labelUndefined {
			byID[labels[i]] = append(byID[labels[i]], c)
		}
	}

	var clusters [][]models.CustomerLocation
	var noise []models.CustomerLocation
	for i, c := range customers {
		if labels[i] == labelNoise || (labels[i] > labelUndefined && len(byID[labels[i]]) < minPts) {
			noise = append(noise, c)
		}
	}
	for id := 1; id <= clusterID; id++ {
		if len(byID[id]) >= minPts {
			clusters = append(clusters, byID[id])
		}
	}
	return clusters, noise
}
