package fixtures

import (
	"fmt"

	cryptoDomain "github.com/allisson/graphql-secrets/internal/crypto/domain"
	directoryDomain "github.com/allisson/graphql-secrets/internal/directory/domain"
)

// Encrypter seals secret content while the dataset is built.
type Encrypter interface {
	Encrypt(plaintext string) (cryptoDomain.SealedBlob, error)
}

// Dataset is the immutable set of entities served for the process lifetime.
type Dataset struct {
	Clients []*directoryDomain.Client
	Secrets []*directoryDomain.Secret
	Groups  []*directoryDomain.Group
}

// DanglingReference is a group reference to a name that matches no entity.
type DanglingReference struct {
	Group string
	Kind  string
	Name  string
}

// String renders the reference for log output.
func (r DanglingReference) String() string {
	return fmt.Sprintf("group %q references unknown %s %q", r.Group, r.Kind, r.Name)
}

// Build validates doc and converts it into a Dataset, sealing every secret's
// content with enc. Collection order follows the document.
func Build(doc *Document, enc Encrypter) (*Dataset, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	ds := &Dataset{
		Clients: make([]*directoryDomain.Client, 0, len(doc.Clients)),
		Secrets: make([]*directoryDomain.Secret, 0, len(doc.Secrets)),
		Groups:  make([]*directoryDomain.Group, 0, len(doc.Groups)),
	}

	for _, c := range doc.Clients {
		ds.Clients = append(ds.Clients, &directoryDomain.Client{Name: c.Name})
	}

	for _, s := range doc.Secrets {
		blob, err := enc.Encrypt(s.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to seal secret %q: %w", s.Name, err)
		}
		ds.Secrets = append(ds.Secrets, &directoryDomain.Secret{Name: s.Name, Content: blob})
	}

	for _, g := range doc.Groups {
		ds.Groups = append(ds.Groups, &directoryDomain.Group{
			Name:        g.Name,
			ClientNames: directoryDomain.NewNameSet(g.Clients...),
			SecretNames: directoryDomain.NewNameSet(g.Secrets...),
		})
	}

	return ds, nil
}

// DanglingReferences lists group references that resolve to nothing, ordered
// by group and then by name. They are legal and resolve as absent.
func (ds *Dataset) DanglingReferences() []DanglingReference {
	clients := make(directoryDomain.NameSet, len(ds.Clients))
	for _, c := range ds.Clients {
		clients[c.Name] = struct{}{}
	}
	secrets := make(directoryDomain.NameSet, len(ds.Secrets))
	for _, s := range ds.Secrets {
		secrets[s.Name] = struct{}{}
	}

	var refs []DanglingReference
	for _, g := range ds.Groups {
		for _, name := range g.ClientNames.Sorted() {
			if !clients.Contains(name) {
				refs = append(refs, DanglingReference{Group: g.Name, Kind: "client", Name: name})
			}
		}
		for _, name := range g.SecretNames.Sorted() {
			if !secrets.Contains(name) {
				refs = append(refs, DanglingReference{Group: g.Name, Kind: "secret", Name: name})
			}
		}
	}
	return refs
}
