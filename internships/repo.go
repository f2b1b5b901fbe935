package internships

type Repo interface {
	// Create assigns the next ID
	Create(internship *Internship) error
	Update(internship *Internship) error
	Get(id int64) (*Internship, error)
	// List returns postings in ID order
	List() ([]*Internship, error)
}
