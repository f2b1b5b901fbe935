package applications

type Repo interface {
	// Create assigns the next ID
	Create(application *Application) error
	Get(id int64) (*Application, error)
	// List returns applications in ID order
	List() ([]*Application, error)
	UpdateStatus(id int64, status Status) (*Application, error)
}
