package project

import "github.com/mkondratev/housing-assistant/internal/entity"

type projectListResponse struct {
	Projects []*entity.Project `json:"projects"`
}

func toProjectList(projects []*entity.Project) projectListResponse {
	if projects == nil {
		projects = []*entity.Project{}
	}
	return projectListResponse{Projects: projects}
}
