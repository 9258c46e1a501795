package card

// CategoryInfo is one row of the category listing, titled in the
// requested language when a translation exists.
type CategoryInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CategoryWords is the contents of one category: the common word ids
// assigned to it, truncated to the requested limit.
type CategoryWords struct {
	CategoryID string  `json:"category_id"`
	Count      int     `json:"count"`
	WordIDs    []int64 `json:"word_ids"`
}

// CategoryList returns the categories in manifest order. Categories
// without a title in the requested language fall back to their id.
func (a *Assembler) CategoryList(lang string) ([]CategoryInfo, error) {
	man, err := a.session.CategoriesManifest()
	if err != nil {
		return nil, err
	}
	titles, err := a.session.CategoryLang(lang)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryInfo, 0, len(man.Categories))
	for _, cid := range man.Categories {
		info := CategoryInfo{ID: cid, Title: cid}
		if meta, ok := titles[cid]; ok {
			if meta.Title != "" {
				info.Title = meta.Title
			}
			info.Description = meta.Description
		}
		out = append(out, info)
	}
	return out, nil
}

// CategoryShow returns a category's word ids. Count is the full size
// before truncation. An unknown category yields an empty list, not an
// error.
func (a *Assembler) CategoryShow(categoryID string, limit int) (CategoryWords, error) {
	idx, err := a.session.CategoryIndex()
	if err != nil {
		return CategoryWords{}, err
	}
	ids := idx[categoryID]
	count := len(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	if ids == nil {
		ids = []int64{}
	}
	return CategoryWords{CategoryID: categoryID, Count: count, WordIDs: ids}, nil
}
