package types

// A Service keeps on running in the background until the done channel is
// closed. Cleanup is called once Run returns.
type Service interface {
	Run(done <-chan struct{})
	Cleanup() error
	String() string
}
