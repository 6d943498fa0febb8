package dictionary

import (
	"path/filepath"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

// Cache holds every dictionary that has been loaded, keyed by its absolute
// path, so that each word list is parsed once no matter how many servers use
// it. Entries never expire; the tries are read-only once cached.
type Cache struct {
	Logger logrus.FieldLogger

	mu            sync.Mutex
	cacheInstance *gocache.Cache
}

func NewCache(logger logrus.FieldLogger) *Cache {
	return &Cache{
		Logger:        logger,
		cacheInstance: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// Get returns the dictionary stored in filePath, building it on first use.
func (c *Cache) Get(filePath string) (*Trie, error) {
	key, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if trie, ok := c.cacheInstance.Get(key); ok {
		return trie.(*Trie), nil
	}

	trie, skipped, err := Build(filePath)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		c.Logger.Warnf("skipped %d entries in %s that are not lowercase words", skipped, filePath)
	}
	c.Logger.Infof("loaded %d words from %s", trie.Len(), filePath)

	c.cacheInstance.Set(key, trie, gocache.NoExpiration)
	return trie, nil
}
