package cms

// 文章连接查询，filter 为空时省略变量
const postConnectionQuery = `query postConnection($filter: PostFilter) {
  postConnection(filter: $filter) {
    totalCount
    pageInfo {
      hasNextPage
      hasPreviousPage
      startCursor
      endCursor
    }
    edges {
      cursor
      node {
        id
        title
        date
        author
        excerpt
        tags
        body
        _sys {
          filename
          relativePath
        }
      }
    }
  }
}`

// 主题连接查询，每个主题节点的 data 字段为标签列表
const themeConnectionQuery = `query themeConnection {
  themeConnection {
    totalCount
    edges {
      node {
        id
        data
        _sys {
          filename
          relativePath
        }
      }
    }
  }
}`
