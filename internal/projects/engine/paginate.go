package engine

import "github.com/earthstream/projects-backend/internal/projects/domain"

// Pagination contract: pages are numbered from 1, the default page size is
// 20 and the maximum is 100. pages == ceil(total/size); a page past the end
// returns an empty slice with the same total/pages.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func paginate(items []domain.Project, page, size int) domain.ProjectsResponse {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	total := len(items)
	pages := (total + size - 1) / size

	start := (page - 1) * size
	if start >= total {
		return domain.ProjectsResponse{Projects: []domain.Project{}, Total: total, Page: page, Pages: pages}
	}
	end := start + size
	if end > total {
		end = total
	}

	out := make([]domain.Project, end-start)
	copy(out, items[start:end])
	return domain.ProjectsResponse{Projects: out, Total: total, Page: page, Pages: pages}
}
