package portal

import (
	"context"

	"github.com/jrsteele09/internship-portal/internships"
)

func (c *Client) ListInternships(ctx context.Context) ([]internships.Internship, error) {
	list, err := decodeInto[[]internships.Internship](c.Get(ctx, PathInternships))
	if err != nil {
		return nil, err
	}
	return *list, nil
}

func (c *Client) GetInternship(ctx context.Context, id int64) (*internships.Internship, error) {
	return decodeInto[internships.Internship](c.Get(ctx, internshipPath(id)))
}

func (c *Client) CreateInternship(ctx context.Context, internship internships.Internship) (*internships.Internship, error) {
	return decodeInto[internships.Internship](c.Post(ctx, PathInternships, internship))
}

func (c *Client) UpdateInternship(ctx context.Context, id int64, internship internships.Internship) (*internships.Internship, error) {
	return decodeInto[internships.Internship](c.Put(ctx, internshipPath(id), internship))
}
